package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/content"
	"github.com/vovakirdan/stripsim/internal/sim"
)

// grid converts logical pixels to terminal cells.
type grid struct {
	sx, sy     float64 // Logical pixels per column / row
	cols, rows int
}

func newGrid(l sim.Layout, cols, rows int) grid {
	cols, rows = core.Max(cols, 1), core.Max(rows, 1)
	return grid{
		sx:   float64(l.Width) / float64(cols),
		sy:   float64(l.Height) / float64(rows),
		cols: cols,
		rows: rows,
	}
}

// rect returns the cells covering r. Non-empty rects cover at least one cell.
func (g grid) rect(r core.Rect) core.Rect {
	x0 := int(math.Floor(float64(r.X) / g.sx))
	y0 := int(math.Floor(float64(r.Y) / g.sy))
	x1 := int(math.Ceil(float64(r.Right()) / g.sx))
	y1 := int(math.Ceil(float64(r.Bottom()) / g.sy))
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// point returns the logical pixel at the centre of a cell.
func (g grid) point(col, row int) (int, int) {
	return int((float64(col) + 0.5) * g.sx), int((float64(row) + 0.5) * g.sy)
}

// hitMap remembers where controls were drawn so clicks can be routed to them
// even when cell rounding misses the pixel rectangle.
type hitMap struct {
	rects map[sim.Control]core.Rect
}

func newHitMap() *hitMap {
	return &hitMap{rects: make(map[sim.Control]core.Rect)}
}

func (h *hitMap) reset() {
	clear(h.rects)
}

func (h *hitMap) add(c sim.Control, r core.Rect) {
	h.rects[c] = r
}

// at returns the control drawn at a cell, if any.
func (h *hitMap) at(col, row int) sim.Control {
	for c, r := range h.rects {
		if r.Contains(col, row) {
			return c
		}
	}
	return sim.ControlNone
}

// drawFrame renders a snapshot into scr. background is the frozen frame shown
// behind the help overlay, nil when none was captured.
func drawFrame(scr *core.Screen, snap sim.Snapshot, background *core.Screen, hits *hitMap) {
	scr.Clear()
	hits.reset()
	g := newGrid(snap.Layout, scr.Width(), scr.Height())

	if snap.Modal.Phase == sim.PhaseWarning {
		drawWarning(scr, snap, g, hits)
	} else {
		drawScene(scr, snap, g, hits)
	}

	if snap.Modal.HelpOpacity > 0 {
		drawHelp(scr, snap, g, background)
	}

	if snap.Modal.PopupOpacity > 0 {
		drawPopup(scr, snap, g)
		if snap.Modal.PopupVisible {
			hits.add(sim.ControlIgnore, g.rect(snap.Layout.Ignore))
		}
	}
}

func drawScene(scr *core.Screen, snap sim.Snapshot, g grid, hits *hitMap) {
	l := snap.Layout

	box := g.rect(l.Box)
	scr.DrawText(box.X, box.Y-1, content.AreaLabel, core.ColorGray)
	scr.DrawBox(box, core.ColorGray)
	drawStrips(scr, snap.Spans, g, box)

	drawPanel(scr, snap, g.rect(l.Panel))

	toggle := g.rect(l.Toggle)
	drawButton(scr, toggle, content.ToggleLabel(snap.Sim.Running), core.ColorTextPrimary)
	hits.add(sim.ControlToggle, toggle)
}

// drawStrips draws the strip spans with half-block resolution, clipped to the
// inside of the box outline.
func drawStrips(scr *core.Screen, spans []core.Rect, g grid, box core.Rect) {
	if len(spans) == 0 || box.W < 3 || box.H < 3 {
		return
	}
	inner := core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2)

	half := g.sy / 2
	top := make(map[int]bool)
	bottom := make(map[int]bool)
	for _, s := range spans {
		h0 := int(math.Floor(float64(s.Y) / half))
		h1 := int(math.Ceil(float64(s.Bottom()) / half))
		for h := h0; h < h1; h++ {
			if h%2 == 0 {
				top[h/2] = true
			} else {
				bottom[h/2] = true
			}
		}
	}

	for row := inner.Y; row < inner.Bottom(); row++ {
		var r rune
		switch {
		case top[row] && bottom[row]:
			r = '█'
		case top[row]:
			r = '▀'
		case bottom[row]:
			r = '▄'
		default:
			continue
		}
		for col := inner.X; col < inner.Right(); col++ {
			scr.SetWithColor(col, row, r, core.ColorStrip)
		}
	}
}

// textBlock writes lines top-down inside a rect, clipping to it.
type textBlock struct {
	scr    *core.Screen
	bounds core.Rect
	y      int
}

func newTextBlock(scr *core.Screen, bounds core.Rect) *textBlock {
	return &textBlock{scr: scr, bounds: bounds, y: bounds.Y}
}

func (b *textBlock) line(text string, c core.Color) {
	if b.y >= b.bounds.Bottom() {
		return
	}
	b.scr.DrawText(b.bounds.X, b.y, truncate(text, b.bounds.W), c)
	b.y++
}

func (b *textBlock) centered(text string, c core.Color) {
	if b.y >= b.bounds.Bottom() {
		return
	}
	text = truncate(text, b.bounds.W)
	x := b.bounds.X + (b.bounds.W-len([]rune(text)))/2
	b.scr.DrawText(x, b.y, text, c)
	b.y++
}

func (b *textBlock) blank() {
	b.y++
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func inset(r core.Rect, dx, dy int) core.Rect {
	return core.NewRect(r.X+dx, r.Y+dy, r.W-2*dx, r.H-2*dy)
}

func drawPanel(scr *core.Screen, snap sim.Snapshot, panel core.Rect) {
	scr.DrawBox(panel, core.ColorDarkGray)
	b := newTextBlock(scr, inset(panel, 2, 1))

	b.line(content.PanelTitle, core.ColorTitle)
	b.blank()
	for _, group := range [][]content.Line{content.Controls, content.About} {
		for _, l := range group {
			if l.Heading {
				b.line(l.Text, core.ColorTextPrimary)
			} else {
				b.line(l.Text, core.ColorTextSecondary)
			}
		}
		b.blank()
	}
	for _, l := range content.Status(snap) {
		b.line(l.Text, core.ColorTextPrimary)
	}
	b.blank()

	b.line(content.RatesHeading, core.ColorTitle)
	b.line(padRow(content.RatesColumns, 14), core.ColorTextPrimary)
	for _, rr := range snap.Rates {
		c := core.ColorTextSecondary
		if rr == snap.RefreshRate {
			c = core.ColorGreen
		}
		b.line(padRow(content.RateRow(rr, rr), 14), c)
	}
}

func padRow(cols [2]string, width int) string {
	return cols[0] + strings.Repeat(" ", core.Max(width-len(cols[0]), 1)) + cols[1]
}

// drawButton draws a one-row "[ label ]" button centred in r.
func drawButton(scr *core.Screen, r core.Rect, label string, c core.Color) {
	text := "[ " + label + " ]"
	x := r.X + (r.W-len([]rune(text)))/2
	y := r.Y + r.H/2
	scr.DrawText(core.Max(x, r.X), y, text, c)
}

func drawWarning(scr *core.Screen, snap sim.Snapshot, g grid, hits *hitMap) {
	l := snap.Layout
	dialog := g.rect(l.Warning)
	scr.DrawBox(dialog, core.ColorTextPrimary)

	checkbox := g.rect(l.Checkbox)
	body := inset(dialog, 2, 1)
	body.H = core.Max(checkbox.Y-body.Y, 0)

	b := newTextBlock(scr, body)
	b.line(content.WarningTitle, core.ColorRed)
	b.blank()
	b.line(content.WarningLead, core.ColorTextPrimary)
	for _, section := range content.WarningSections {
		for _, line := range section {
			b.line(line, core.ColorTextSecondary)
		}
		b.blank()
	}

	mark := "[ ]"
	if snap.Modal.Acknowledged {
		mark = "[x]"
	}
	label := truncate(mark+" "+content.AcknowledgeText, dialog.Right()-checkbox.X-1)
	scr.DrawText(checkbox.X, checkbox.Y, label, core.ColorTextPrimary)
	hits.add(sim.ControlCheckbox, core.NewRect(checkbox.X, checkbox.Y, len([]rune(label)), 1))

	cont := g.rect(l.Continue)
	c := core.ColorGray
	if snap.CanContinue {
		c = core.ColorGreen
	}
	drawButton(scr, cont, content.ContinueLabel(snap), c)
	hits.add(sim.ControlContinue, cont)
}

func drawPopup(scr *core.Screen, snap sim.Snapshot, g grid) {
	popup := g.rect(snap.Layout.Popup)
	scr.DrawRect(popup, ' ', core.ColorDefault)
	scr.DrawBox(popup, core.ColorRed)

	b := newTextBlock(scr, inset(popup, 2, 1))
	b.centered(content.PopupTitle, core.ColorRed)
	b.blank()
	b.centered(content.PopupLead, core.ColorTextPrimary)
	b.centered(content.PopupLimit(snap), core.ColorTitle)
	b.blank()
	for _, line := range content.PopupBody {
		b.line(line, core.ColorTextSecondary)
	}

	drawButton(scr, g.rect(snap.Layout.Ignore), content.IgnoreLabel, core.ColorBlue)
	scr.Fade(popup, uint8(snap.Modal.PopupOpacity))
}

func drawHelp(scr *core.Screen, snap sim.Snapshot, g grid, background *core.Screen) {
	if background != nil {
		scr.CopyFrom(background)
	}
	full := core.NewRect(0, 0, scr.Width(), scr.Height())
	scr.Fade(full, uint8(255-snap.Modal.HelpOpacity*4/5))

	box := g.rect(snap.Layout.Help)
	scr.DrawRect(box, ' ', core.ColorDefault)
	scr.DrawBox(box, core.ColorTextPrimary)

	b := newTextBlock(scr, inset(box, 2, 1))
	b.line(content.HelpTitle, core.ColorTitle)
	b.blank()
	b.line(content.FigureTitle, core.ColorTitle)
	figure := core.NewRect(b.bounds.X, b.y, b.bounds.W, 4)
	drawFigure(scr, figure, g)
	b.y += figure.H
	b.line(figureLabels(figure.W), core.ColorTextPrimary)
	for _, line := range content.FigureCaption {
		b.line(line, core.ColorTextSecondary)
	}
	b.blank()
	for _, l := range content.HelpBody {
		if l.Heading {
			b.line(l.Text, core.ColorTitle)
		} else {
			b.line(l.Text, core.ColorTextSecondary)
		}
	}
	b.blank()
	b.centered(content.HelpFooter, core.ColorTextPrimary)

	scr.Fade(box, uint8(snap.Modal.HelpOpacity))
}

// drawFigure draws the drum test figure: diagonal stripes with a slit whose
// width shrinks with the shutter speed.
func drawFigure(scr *core.Screen, r core.Rect, g grid) {
	n := len(content.FigureSpeeds)
	pw := (r.W - (n - 1)) / n
	if pw < 4 {
		return
	}
	for i, sp := range content.FigureSpeeds {
		px := r.X + i*(pw+1)
		slit := core.Max(int(math.Round(float64(sp.Slit)/g.sx)), 1)
		sx0 := px + (pw-slit)/2
		for y := r.Y; y < r.Bottom(); y++ {
			for x := px; x < px+pw; x++ {
				c := core.ColorDarkGray
				if ((x-px)+(y-r.Y))/2%2 == 1 {
					c = core.ColorLightGray
				}
				ch := '╱'
				if x >= sx0 && x < sx0+slit {
					ch, c = '▒', core.ColorGray
				}
				scr.SetWithColor(x, y, ch, c)
			}
		}
	}
}

func figureLabels(width int) string {
	n := len(content.FigureSpeeds)
	pw := (width - (n - 1)) / n
	if pw < 4 {
		return ""
	}
	var sb strings.Builder
	for i, sp := range content.FigureSpeeds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		pad := core.Max(pw-len(sp.Label), 0)
		sb.WriteString(strings.Repeat(" ", pad/2))
		sb.WriteString(sp.Label)
		sb.WriteString(strings.Repeat(" ", pad-pad/2))
	}
	return sb.String()
}

// styleKey identifies a rendered cell style.
type styleKey struct {
	color core.Color
	dim   uint8
}

// Styler maps palette roles and cell opacity to lipgloss styles, blending
// faded cells toward the theme background.
type Styler struct {
	theme  core.Theme
	styles map[styleKey]lipgloss.Style
}

// NewStyler creates a styler for a theme.
func NewStyler(theme core.Theme) *Styler {
	return &Styler{theme: theme, styles: make(map[styleKey]lipgloss.Style)}
}

// SetTheme switches palettes, dropping cached styles.
func (s *Styler) SetTheme(theme core.Theme) {
	if theme == s.theme {
		return
	}
	s.theme = theme
	clear(s.styles)
}

// quantize reduces opacity to 16 levels to bound the style cache.
func quantize(dim uint8) uint8 {
	if dim == 255 {
		return 255
	}
	return dim &^ 0x0f
}

func (s *Styler) style(c core.Color, dim uint8) lipgloss.Style {
	key := styleKey{color: c, dim: quantize(dim)}
	if st, ok := s.styles[key]; ok {
		return st
	}
	pal := core.PaletteFor(s.theme)
	bg, _ := colorful.MakeColor(pal.RGBA(core.ColorBackground))
	fg, _ := colorful.MakeColor(pal.RGBA(c))
	mixed := bg.BlendRgb(fg, float64(key.dim)/255)

	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(mixed.Hex())).
		Background(lipgloss.Color(bg.Hex()))
	s.styles[key] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (s *Styler) RenderScreen(scr *core.Screen) string {
	var sb strings.Builder
	sb.Grow(scr.Width()*scr.Height()*2 + scr.Height())

	for y := range scr.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < scr.Width() {
			start := scr.GetCell(x, y)
			key := styleKey{color: start.Color, dim: quantize(start.Dim)}

			var run strings.Builder
			for x < scr.Width() {
				cell := scr.GetCell(x, y)
				if cell.Color != key.color || quantize(cell.Dim) != key.dim {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(s.style(key.color, key.dim).Render(run.String()))
		}
	}
	return sb.String()
}
