package window

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/content"
	"github.com/vovakirdan/stripsim/internal/sim"
)

// renderer draws snapshots with ebiten. Overlays are drawn into a scratch
// layer and composited with their opacity.
type renderer struct {
	faces  faces
	figure *ebiten.Image // nil when the figure is generated
	layer  *ebiten.Image
	pal    *core.Palette
}

func (r *renderer) color(c core.Color) color.RGBA {
	return r.pal.RGBA(c)
}

// frame renders a snapshot into dst. background is the frozen frame shown
// behind the help overlay, nil when none was captured.
func (r *renderer) frame(dst *ebiten.Image, snap sim.Snapshot, background *ebiten.Image) {
	r.pal = core.PaletteFor(snap.Theme)
	dst.Fill(r.color(core.ColorBackground))

	if snap.Modal.Phase == sim.PhaseWarning {
		r.warning(dst, snap)
	} else {
		r.scene(dst, snap)
	}

	if snap.Modal.HelpOpacity > 0 {
		r.help(dst, snap, background)
	}
	if snap.Modal.PopupOpacity > 0 {
		r.popup(dst, snap)
	}
}

func (r *renderer) scratch(dst *ebiten.Image) *ebiten.Image {
	b := dst.Bounds()
	if r.layer == nil || r.layer.Bounds() != b {
		if r.layer != nil {
			r.layer.Deallocate()
		}
		r.layer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	r.layer.Clear()
	return r.layer
}

func (r *renderer) composite(dst, layer *ebiten.Image, opacity int) {
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity) / 255)
	dst.DrawImage(layer, op)
}

func fillRect(dst *ebiten.Image, rc core.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), c, false)
}

func strokeRect(dst *ebiten.Image, rc core.Rect, width float32, c color.Color) {
	vector.StrokeRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), width, c, false)
}

func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

func drawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, rc core.Rect, c color.Color) {
	w, h := text.Measure(s, face, 0)
	x := float64(rc.X) + (float64(rc.W)-w)/2
	y := float64(rc.Y) + (float64(rc.H)-h)/2
	drawText(dst, s, face, x, y, c)
}

// column writes lines top-down from (x, y), stopping at maxY.
type column struct {
	dst  *ebiten.Image
	x, y float64
	maxY float64
}

func (c *column) line(s string, face *text.GoTextFace, clr color.Color) {
	step := face.Size * 1.4
	if c.y+step > c.maxY {
		return
	}
	drawText(c.dst, s, face, c.x, c.y, clr)
	c.y += step
}

func (c *column) gap(px float64) {
	c.y += px
}

func (r *renderer) button(dst *ebiten.Image, rc core.Rect, label string, fill, fg core.Color) {
	fillRect(dst, rc, r.color(fill))
	strokeRect(dst, rc, 1, r.color(core.ColorGray))
	drawCentered(dst, label, r.faces.small, rc, r.color(fg))
}

func (r *renderer) scene(dst *ebiten.Image, snap sim.Snapshot) {
	l := snap.Layout

	drawText(dst, content.AreaLabel, r.faces.small, float64(l.Box.X), float64(l.Box.Y-22), r.color(core.ColorTextSecondary))
	for _, s := range snap.Spans {
		fillRect(dst, s, r.color(core.ColorStrip))
	}
	strokeRect(dst, l.Box, 2, r.color(core.ColorGray))

	r.panel(dst, snap)
	r.button(dst, l.Toggle, content.ToggleLabel(snap.Sim.Running), core.ColorLightGray, core.ColorBlack)
}

func (r *renderer) panel(dst *ebiten.Image, snap sim.Snapshot) {
	p := snap.Layout.Panel
	fillRect(dst, p, r.color(core.ColorPanel))
	strokeRect(dst, p, 1, r.color(core.ColorGray))

	col := &column{dst: dst, x: float64(p.X + 15), y: float64(p.Y + 15), maxY: float64(p.Bottom() - 10)}
	col.line(content.PanelTitle, r.faces.title, r.color(core.ColorTitle))
	col.gap(8)
	for _, group := range [][]content.Line{content.Controls, content.About} {
		for _, ln := range group {
			if ln.Heading {
				col.line(ln.Text, r.faces.small, r.color(core.ColorTextPrimary))
			} else {
				col.line(ln.Text, r.faces.tiny, r.color(core.ColorTextSecondary))
			}
		}
		col.gap(8)
	}
	for _, ln := range content.Status(snap) {
		col.line(ln.Text, r.faces.small, r.color(core.ColorTextPrimary))
	}
	col.gap(8)

	col.line(content.RatesHeading, r.faces.small, r.color(core.ColorTitle))
	second := col.x + 150
	header := content.RatesColumns
	drawText(dst, header[1], r.faces.tiny, second, col.y, r.color(core.ColorTextPrimary))
	col.line(header[0], r.faces.tiny, r.color(core.ColorTextPrimary))
	for _, rr := range snap.Rates {
		c := r.color(core.ColorTextSecondary)
		if rr == snap.RefreshRate {
			c = r.color(core.ColorGreen)
		}
		row := content.RateRow(rr, rr)
		drawText(dst, row[1], r.faces.tiny, second, col.y, c)
		col.line(row[0], r.faces.tiny, c)
	}
}

func (r *renderer) warning(dst *ebiten.Image, snap sim.Snapshot) {
	l := snap.Layout
	d := l.Warning
	fillRect(dst, d, r.color(core.ColorPanel))
	strokeRect(dst, d, 2, r.color(core.ColorRed))

	col := &column{dst: dst, x: float64(d.X + 25), y: float64(d.Y + 20), maxY: float64(l.Checkbox.Y - 5)}
	col.line(content.WarningTitle, r.faces.title, r.color(core.ColorRed))
	col.gap(6)
	col.line(content.WarningLead, r.faces.small, r.color(core.ColorTextPrimary))
	for _, section := range content.WarningSections {
		for _, s := range section {
			col.line(s, r.faces.tiny, r.color(core.ColorTextSecondary))
		}
		col.gap(6)
	}

	cb := l.Checkbox
	fillRect(dst, cb, r.color(core.ColorWhite))
	strokeRect(dst, cb, 2, r.color(core.ColorGray))
	if snap.Modal.Acknowledged {
		fillRect(dst, core.NewRect(cb.X+4, cb.Y+4, cb.W-8, cb.H-8), r.color(core.ColorGreen))
	}
	drawText(dst, content.AcknowledgeText, r.faces.small, float64(cb.Right()+10), float64(cb.Y), r.color(core.ColorTextPrimary))

	fill := core.ColorGray
	if snap.CanContinue {
		fill = core.ColorGreen
	}
	r.button(dst, l.Continue, content.ContinueLabel(snap), fill, core.ColorBlack)
}

func (r *renderer) popup(dst *ebiten.Image, snap sim.Snapshot) {
	layer := r.scratch(dst)
	p := snap.Layout.Popup
	fillRect(layer, p, r.color(core.ColorPanel))
	strokeRect(layer, p, 3, r.color(core.ColorRed))

	col := &column{dst: layer, x: float64(p.X + 20), y: float64(p.Y + 20), maxY: float64(snap.Layout.Ignore.Y - 5)}
	col.line(content.PopupTitle, r.faces.title, r.color(core.ColorRed))
	col.gap(6)
	col.line(content.PopupLead, r.faces.normal, r.color(core.ColorTextPrimary))
	col.line(content.PopupLimit(snap), r.faces.normal, r.color(core.ColorTitle))
	col.gap(6)
	for _, s := range content.PopupBody {
		col.line(s, r.faces.tiny, r.color(core.ColorTextSecondary))
	}

	r.button(layer, snap.Layout.Ignore, content.IgnoreLabel, core.ColorBlue, core.ColorWhite)
	r.composite(dst, layer, snap.Modal.PopupOpacity)
}

func (r *renderer) help(dst *ebiten.Image, snap sim.Snapshot, background *ebiten.Image) {
	if background != nil {
		dst.DrawImage(background, nil)
	}
	bg := r.color(core.ColorBackground)
	b := dst.Bounds()
	vector.DrawFilledRect(dst, 0, 0, float32(b.Dx()), float32(b.Dy()),
		color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: uint8(snap.Modal.HelpOpacity * 4 / 5)}, false)

	layer := r.scratch(dst)
	h := snap.Layout.Help
	fillRect(layer, h, r.color(core.ColorPanel))
	strokeRect(layer, h, 2, r.color(core.ColorTextPrimary))

	col := &column{dst: layer, x: float64(h.X + 20), y: float64(h.Y + 15), maxY: float64(h.Bottom() - 10)}
	col.line(content.HelpTitle, r.faces.title, r.color(core.ColorTitle))
	col.gap(4)
	col.line(content.FigureTitle, r.faces.small, r.color(core.ColorTextPrimary))

	fig := core.NewRect(h.X+20, int(col.y), h.W-40, core.Min(160, h.H/3))
	r.drawFigure(layer, fig)
	col.y += float64(fig.H) + 6
	for _, s := range content.FigureCaption {
		col.line(s, r.faces.tiny, r.color(core.ColorTextSecondary))
	}
	col.gap(6)
	for _, ln := range content.HelpBody {
		if ln.Heading {
			col.line(ln.Text, r.faces.small, r.color(core.ColorTitle))
		} else {
			col.line(ln.Text, r.faces.tiny, r.color(core.ColorTextSecondary))
		}
	}

	footer := core.NewRect(h.X, h.Bottom()-30, h.W, 24)
	drawCentered(layer, content.HelpFooter, r.faces.small, footer, r.color(core.ColorTextPrimary))
	r.composite(dst, layer, snap.Modal.HelpOpacity)
}

// drawFigure draws the scanned figure scaled into rc, or generates one.
func (r *renderer) drawFigure(dst *ebiten.Image, rc core.Rect) {
	if r.figure != nil {
		fb := r.figure.Bounds()
		scale := math.Min(float64(rc.W)/float64(fb.Dx()), float64(rc.H)/float64(fb.Dy()))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(rc.X)+(float64(rc.W)-float64(fb.Dx())*scale)/2, float64(rc.Y))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(r.figure, op)
		return
	}
	r.generateFigure(dst, rc)
}

// generateFigure draws diagonal drum stripes with a slit per shutter speed.
func (r *renderer) generateFigure(dst *ebiten.Image, rc core.Rect) {
	n := len(content.FigureSpeeds)
	gap := 10
	pw := (rc.W - gap*(n-1)) / n
	ph := rc.H - 20
	if pw <= 0 || ph <= 0 {
		return
	}

	for i, sp := range content.FigureSpeeds {
		px := rc.X + i*(pw+gap)
		p := core.NewRect(px, rc.Y, pw, ph)
		sub := dst.SubImage(image.Rect(p.X, p.Y, p.Right(), p.Bottom())).(*ebiten.Image)

		fillRect(sub, p, r.color(core.ColorWhite))
		for off := -ph; off < pw; off += 12 {
			x0, y0 := float32(px+off), float32(p.Bottom())
			vector.StrokeLine(sub, x0, y0, x0+float32(ph), float32(p.Y), 4, r.color(core.ColorBlack), true)
		}
		slit := core.NewRect(px+(pw-sp.Slit)/2, p.Y, sp.Slit, ph)
		fillRect(sub, slit, color.RGBA{R: sp.Shade, G: sp.Shade, B: sp.Shade, A: 0xff})
		strokeRect(dst, p, 1, r.color(core.ColorGray))

		label := core.NewRect(px, p.Bottom()+2, pw, 18)
		drawCentered(dst, sp.Label, r.faces.tiny, label, r.color(core.ColorTextPrimary))
	}
}
