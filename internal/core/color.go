package core

import "image/color"

// Color is a palette role for a screen cell or a drawn shape.
// Renderers resolve it against the active Theme's palette.
type Color uint8

// Palette roles.
const (
	ColorDefault Color = iota
	ColorBackground
	ColorPanel
	ColorTextPrimary
	ColorTextSecondary
	ColorTitle
	ColorStrip
	ColorGray
	ColorLightGray
	ColorDarkGray
	ColorRed
	ColorGreen
	ColorBlue
	ColorBlack
	ColorWhite
	colorCount
)

// Theme selects one of the two built-in palettes.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// String returns the display name of the theme.
func (t Theme) String() string {
	if t == ThemeLight {
		return "Light"
	}
	return "Dark"
}

// Next returns the other theme.
func (t Theme) Next() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a config/flag value to a Theme. Unknown names yield ThemeDark
// and false.
func ParseTheme(name string) (Theme, bool) {
	switch name {
	case "dark", "Dark", "":
		return ThemeDark, true
	case "light", "Light":
		return ThemeLight, true
	}
	return ThemeDark, false
}

// Palette maps every role to a concrete colour.
type Palette [colorCount]color.RGBA

// RGBA returns the colour for a role. ColorDefault resolves to TextPrimary.
func (p *Palette) RGBA(c Color) color.RGBA {
	if c == ColorDefault || c >= colorCount {
		return p[ColorTextPrimary]
	}
	return p[c]
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

var palettes = [2]Palette{
	ThemeDark: {
		ColorBackground:    rgb(0, 0, 0),
		ColorPanel:         rgb(50, 50, 50),
		ColorTextPrimary:   rgb(200, 200, 200),
		ColorTextSecondary: rgb(150, 150, 150),
		ColorTitle:         rgb(255, 255, 0),
		ColorStrip:         rgb(255, 255, 255),
		ColorGray:          rgb(100, 100, 100),
		ColorLightGray:     rgb(200, 200, 200),
		ColorDarkGray:      rgb(50, 50, 50),
		ColorRed:           rgb(255, 0, 0),
		ColorGreen:         rgb(0, 255, 0),
		ColorBlue:          rgb(0, 100, 255),
		ColorBlack:         rgb(0, 0, 0),
		ColorWhite:         rgb(255, 255, 255),
	},
	ThemeLight: {
		ColorBackground:    rgb(255, 255, 255),
		ColorPanel:         rgb(240, 240, 240),
		ColorTextPrimary:   rgb(50, 50, 50),
		ColorTextSecondary: rgb(100, 100, 100),
		ColorTitle:         rgb(51, 3, 179),
		ColorStrip:         rgb(52, 16, 178),
		ColorGray:          rgb(128, 128, 128),
		ColorLightGray:     rgb(64, 64, 64),
		ColorDarkGray:      rgb(240, 240, 240),
		ColorRed:           rgb(255, 0, 0),
		ColorGreen:         rgb(0, 255, 0),
		ColorBlue:          rgb(0, 100, 255),
		ColorBlack:         rgb(0, 0, 0),
		ColorWhite:         rgb(255, 255, 255),
	},
}

// PaletteFor returns the palette of a theme.
func PaletteFor(t Theme) *Palette {
	if t == ThemeLight {
		return &palettes[ThemeLight]
	}
	return &palettes[ThemeDark]
}
