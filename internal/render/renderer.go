// Package render turns one frame's command stream into pixels. The renderer
// walks the stream in order and dispatches each command to the host surface;
// the compositor owns the offscreen surface and the dirty rectangle and
// performs the final bounded blit; the differ decides whether a frame needs
// rendering at all.
package render

import (
	"image"

	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/curve"
	"github.com/hferr/stencil/internal/glyphs"
	"github.com/hferr/stencil/internal/raster"
)

// Renderer walks a command buffer against a host surface. Command order is
// load-bearing: painting is back to front and a Scissor stays in force until
// the next Scissor, so the walk never reorders or skips ahead. Kinds with no
// visual effect (Nop, Image) and any kind this version does not recognize
// are skipped without aborting the walk.
type Renderer struct {
	quant   *Quantizer
	tess    *curve.Tessellator
	metrics *glyphs.Table

	clip    image.Rectangle
	hasClip bool
	scratch []image.Point
}

// NewRenderer creates a renderer using the given quantizer, tessellator and
// glyph table.
func NewRenderer(q *Quantizer, t *curve.Tessellator, m *glyphs.Table) *Renderer {
	return &Renderer{
		quant:   q,
		tess:    t,
		metrics: m,
		scratch: make([]image.Point, 0, t.Segments()+1),
	}
}

// Walk renders every command of buf onto dst in order, widening region by
// each drawn command's bounding box. The active clip resets to "none" at the
// start of every walk; within the walk a Scissor replaces (never intersects)
// it.
func (r *Renderer) Walk(dst raster.Surface, buf *command.Buffer, region *Region) {
	w, h := dst.Size()
	full := image.Rect(0, 0, w, h)
	r.clip = full
	r.hasClip = false
	dst.SetClip(full)

	for i := range buf.Commands() {
		c := &buf.Commands()[i]
		switch c.Kind {
		case command.Scissor:
			r.applyScissor(dst, c.Rect, full)

		case command.Rect:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.StrokeRect(c.Rect, c.Rounding)
			r.mark(region, c.Rect.Inset(-c.Thickness))

		case command.RectFilled:
			dst.SetLevel(r.quant.Fill(c.Color))
			dst.FillRect(c.Rect, c.Rounding)
			r.mark(region, c.Rect)

		case command.Line:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.Polyline([]image.Point{c.From, c.To})
			r.mark(region, bound(c.From, c.To).Inset(-c.Thickness))

		case command.Circle:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.StrokeOval(c.Rect)
			r.mark(region, c.Rect.Inset(-c.Thickness))

		case command.CircleFilled:
			dst.SetLevel(r.quant.Fill(c.Color))
			dst.FillOval(c.Rect)
			r.mark(region, c.Rect)

		case command.Triangle, command.Polygon:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.Polygon(c.Pts, true)
			r.mark(region, boundPts(c.Pts).Inset(-c.Thickness))

		case command.TriangleFilled, command.PolygonFilled:
			dst.SetLevel(r.quant.Fill(c.Color))
			dst.FillPolygon(c.Pts)
			r.mark(region, boundPts(c.Pts))

		case command.Polyline:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.Polyline(c.Pts)
			r.mark(region, boundPts(c.Pts).Inset(-c.Thickness))

		case command.Curve:
			if len(c.Pts) != 4 {
				continue
			}
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			r.scratch = r.tess.Flatten(c.Pts[0], c.Pts[1], c.Pts[2], c.Pts[3], r.scratch[:0])
			dst.Polyline(r.scratch)
			r.mark(region, boundPts(r.scratch).Inset(-c.Thickness))

		case command.Arc:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.SetStroke(c.Thickness)
			dst.Arc(c.Rect, c.StartDeg, c.SweepDeg)
			r.mark(region, c.Rect.Inset(-c.Thickness))

		case command.Text:
			dst.SetLevel(r.quant.Pen(c.Color))
			dst.TextRun(c.Pos.X, c.Pos.Y, c.Text)
			r.mark(region, r.textBounds(c.Pos, c.Text))

		default:
			// Nop, Image, and any kind a newer engine adds: skip and
			// keep walking.
		}
	}
}

// AppendRune draws a single glyph run at a precomputed caret position
// without walking a command stream. This is the trailing-append fast path;
// callers are responsible for only using it when the sole change since the
// previous frame is one printable character appended to the focused field.
func (r *Renderer) AppendRune(dst raster.Surface, region *Region, pos image.Point, ch rune, c command.Color) {
	w, h := dst.Size()
	dst.SetClip(image.Rect(0, 0, w, h))
	dst.SetLevel(r.quant.Pen(c))
	s := string(ch)
	dst.TextRun(pos.X, pos.Y, s)
	region.Add(r.textBounds(pos, s))
}

// applyScissor replaces the active clip. The engine's null-rectangle
// sentinel clears the clip instead and never widens the dirty region.
func (r *Renderer) applyScissor(dst raster.Surface, rect image.Rectangle, full image.Rectangle) {
	if command.IsNullClip(rect) {
		r.clip = full
		r.hasClip = false
		dst.SetClip(full)
		return
	}
	r.clip = rect
	r.hasClip = true
	dst.SetClip(rect)
}

// mark widens region by a drawn bounding box, trimmed to the active clip
// since pixels outside it were not touched.
func (r *Renderer) mark(region *Region, box image.Rectangle) {
	if r.hasClip {
		box = box.Intersect(r.clip)
	}
	region.Add(box)
}

// textBounds returns the box a text run occupies, sized by the glyph table.
func (r *Renderer) textBounds(pos image.Point, s string) image.Rectangle {
	return image.Rect(
		pos.X,
		pos.Y-r.metrics.Ascent(),
		pos.X+r.metrics.Width(s),
		pos.Y+r.metrics.Height()-r.metrics.Ascent(),
	)
}

func bound(a, b image.Point) image.Rectangle {
	return boundPts([]image.Point{a, b})
}

func boundPts(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
