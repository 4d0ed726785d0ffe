package sim

import (
	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/core"
)

// Control identifies a clickable surface.
type Control int

const (
	ControlNone     Control = iota
	ControlToggle           // Start/Stop button
	ControlCheckbox         // Warning acknowledgement checkbox
	ControlContinue         // Warning continue button
	ControlIgnore           // Speed popup ignore button
)

// String returns the control name.
func (c Control) String() string {
	switch c {
	case ControlToggle:
		return "toggle"
	case ControlCheckbox:
		return "checkbox"
	case ControlContinue:
		return "continue"
	case ControlIgnore:
		return "ignore"
	default:
		return "none"
	}
}

// Warning dialog geometry.
const (
	warningMaxW      = 600
	warningMaxH      = 500
	warningCheckboxY = 430 // below the title and the five text sections
	checkboxSize     = 18
	continueW        = 220
	continueH        = 30
)

// Popup and help geometry.
const (
	popupW   = 550
	popupH   = 300
	ignoreW  = 140
	ignoreH  = 40
	helpMaxW = 750
	helpMaxH = 550
)

// Layout holds the bounds of every region, in logical pixels.
type Layout struct {
	Width, Height int

	Box    core.Rect // Shutter test area
	Panel  core.Rect // Instructions and status panel
	Toggle core.Rect

	Warning  core.Rect // Warning dialog
	Checkbox core.Rect
	Continue core.Rect

	Popup  core.Rect
	Ignore core.Rect

	Help core.Rect
}

// NewLayout computes the layout for a window, enforcing the minimum size.
func NewLayout(d config.DisplayConfig, width, height int) Layout {
	w := core.Max(width, d.MinWidth)
	h := core.Max(height, d.MinHeight)

	l := Layout{Width: w, Height: h}

	boxW := w - d.BoxMargin - d.PanelWidth - d.PanelMargin - d.RightMargin
	l.Box = core.NewRect(d.BoxMargin, d.BoxMargin, core.Max(boxW, 1), h-2*d.BoxMargin)
	l.Panel = core.NewRect(l.Box.Right()+d.PanelMargin, d.BoxMargin, d.PanelWidth, l.Box.H)
	l.Toggle = core.NewRect(10, h-d.ButtonHeight-10, d.ButtonWidth, d.ButtonHeight)

	ww, wh := core.Min(warningMaxW, w-40), core.Min(warningMaxH, h-40)
	l.Warning = centered(w, h, ww, wh)
	l.Checkbox = core.NewRect(l.Warning.X+25, l.Warning.Y+warningCheckboxY, checkboxSize, checkboxSize)
	l.Continue = core.NewRect(l.Warning.Right()-continueW-10, l.Warning.Bottom()-continueH-10, continueW, continueH)

	l.Popup = centered(w, h, popupW, popupH)
	l.Ignore = core.NewRect(l.Popup.Right()-ignoreW-20, l.Popup.Bottom()-ignoreH-10, ignoreW, ignoreH)

	l.Help = centered(w, h, core.Min(helpMaxW, w-30), core.Min(helpMaxH, h-30))
	return l
}

func centered(w, h, cw, ch int) core.Rect {
	return core.NewRect((w-cw)/2, (h-ch)/2, cw, ch)
}

// Bounds returns the rectangle of a control.
func (l Layout) Bounds(c Control) core.Rect {
	switch c {
	case ControlToggle:
		return l.Toggle
	case ControlCheckbox:
		return l.Checkbox
	case ControlContinue:
		return l.Continue
	case ControlIgnore:
		return l.Ignore
	default:
		return core.Rect{}
	}
}

// Hit reports whether (x, y) lies on the given control.
func (l Layout) Hit(c Control, x, y int) bool {
	return l.Bounds(c).Contains(x, y)
}

// CenterOf returns the centre point of a control. Frontends use it to turn
// keyboard shortcuts into pointer activations.
func (l Layout) CenterOf(c Control) (int, int) {
	return l.Bounds(c).Center()
}
