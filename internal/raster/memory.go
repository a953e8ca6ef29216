package raster

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrBadSize is returned for non-positive surface dimensions.
var ErrBadSize = errors.New("raster: surface dimensions must be positive")

// Memory is a software surface over a byte-per-pixel level framebuffer. It
// is the offscreen compositing target and the test double for the visible
// surface. Every pixel write is counted so tests can assert that a frame
// touched nothing.
type Memory struct {
	width, height int
	pix           []Level

	pen     Level
	stroke  int
	clip    image.Rectangle
	ascent  int
	descent int
	advance func(b byte) int

	writes int
}

// NewMemory allocates a software surface. The framebuffer is the only
// allocation this package ever makes; failure here is fatal to startup.
func NewMemory(width, height int) (*Memory, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadSize
	}
	m := &Memory{
		width:   width,
		height:  height,
		pix:     make([]Level, width*height),
		pen:     Black,
		stroke:  1,
		clip:    image.Rect(0, 0, width, height),
		ascent:  10,
		descent: 3,
		advance: func(byte) int { return 7 },
	}
	return m, nil
}

// SetFontMetrics installs the advance function and vertical metrics used by
// TextRun. The backend wires the glyph table here so drawn runs stay inside
// the bounds the renderer computes for them.
func (m *Memory) SetFontMetrics(advance func(b byte) int, ascent, descent int) {
	if advance != nil {
		m.advance = advance
	}
	m.ascent = ascent
	m.descent = descent
}

// Size returns the surface dimensions.
func (m *Memory) Size() (int, int) {
	return m.width, m.height
}

// SetLevel sets the pen level.
func (m *Memory) SetLevel(l Level) {
	if l >= levelCount {
		l = Black
	}
	m.pen = l
}

// SetStroke sets the stroke width, clamped to at least 1.
func (m *Memory) SetStroke(w int) {
	if w < 1 {
		w = 1
	}
	m.stroke = w
}

// SetClip replaces the clip rectangle, clamped to the surface bounds.
func (m *Memory) SetClip(r image.Rectangle) {
	m.clip = r.Intersect(image.Rect(0, 0, m.width, m.height))
}

// Clip returns the active clip rectangle.
func (m *Memory) Clip() image.Rectangle {
	return m.clip
}

// LevelAt returns the level of the pixel at (x, y), White outside bounds.
func (m *Memory) LevelAt(x, y int) Level {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return White
	}
	return m.pix[y*m.width+x]
}

// Writes returns the number of pixel writes since construction or the last
// ResetWrites.
func (m *Memory) Writes() int {
	return m.writes
}

// ResetWrites zeroes the write counter.
func (m *Memory) ResetWrites() {
	m.writes = 0
}

// Clear fills the whole surface with White, ignoring the clip.
func (m *Memory) Clear() {
	for i := range m.pix {
		m.pix[i] = White
	}
	m.writes += len(m.pix)
}

func (m *Memory) set(x, y int) {
	if x < m.clip.Min.X || x >= m.clip.Max.X || y < m.clip.Min.Y || y >= m.clip.Max.Y {
		return
	}
	m.pix[y*m.width+x] = m.pen
	m.writes++
}

func (m *Memory) hspan(x0, x1, y int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		m.set(x, y)
	}
}

// line draws a single-pixel Bresenham segment.
func (m *Memory) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		m.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// thickLine widens a segment by offsetting parallels along its minor axis.
func (m *Memory) thickLine(a, b image.Point) {
	t := m.stroke
	if t <= 1 {
		m.line(a.X, a.Y, b.X, b.Y)
		return
	}
	lo := -(t - 1) / 2
	hi := lo + t - 1
	if abs(b.X-a.X) >= abs(b.Y-a.Y) {
		for o := lo; o <= hi; o++ {
			m.line(a.X, a.Y+o, b.X, b.Y+o)
		}
	} else {
		for o := lo; o <= hi; o++ {
			m.line(a.X+o, a.Y, b.X+o, b.Y)
		}
	}
}

// StrokeRect outlines r, with quarter-circle corners when rounding > 0.
func (m *Memory) StrokeRect(r image.Rectangle, rounding int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	rad := clampRounding(rounding, r)
	if rad <= 0 {
		m.thickLine(image.Pt(x0, y0), image.Pt(x1, y0))
		m.thickLine(image.Pt(x1, y0), image.Pt(x1, y1))
		m.thickLine(image.Pt(x1, y1), image.Pt(x0, y1))
		m.thickLine(image.Pt(x0, y1), image.Pt(x0, y0))
		return
	}
	m.thickLine(image.Pt(x0+rad, y0), image.Pt(x1-rad, y0))
	m.thickLine(image.Pt(x1, y0+rad), image.Pt(x1, y1-rad))
	m.thickLine(image.Pt(x1-rad, y1), image.Pt(x0+rad, y1))
	m.thickLine(image.Pt(x0, y1-rad), image.Pt(x0, y0+rad))
	d := 2 * rad
	m.arcSegment(image.Rect(x0, y0, x0+d+1, y0+d+1), 90, 90)
	m.arcSegment(image.Rect(x1-d, y0, x1+1, y0+d+1), 0, 90)
	m.arcSegment(image.Rect(x1-d, y1-d, x1+1, y1+1), 270, 90)
	m.arcSegment(image.Rect(x0, y1-d, x0+d+1, y1+1), 180, 90)
}

// FillRect fills r, shaving the corners by a quarter circle when rounding > 0.
func (m *Memory) FillRect(r image.Rectangle, rounding int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	rad := clampRounding(rounding, r)
	x0, y0 := r.Min.X, r.Min.Y
	x1, y1 := r.Max.X-1, r.Max.Y-1
	for y := y0; y <= y1; y++ {
		inset := 0
		if rad > 0 {
			dy := 0
			if y < y0+rad {
				dy = y0 + rad - y
			} else if y > y1-rad {
				dy = y - (y1 - rad)
			}
			if dy > 0 {
				f := float64(rad)*float64(rad) - float64(dy)*float64(dy)
				if f < 0 {
					f = 0
				}
				inset = rad - int(math.Sqrt(f)+0.5)
			}
		}
		m.hspan(x0+inset, x1-inset, y)
	}
}

// StrokeOval outlines the oval inscribed in r.
func (m *Memory) StrokeOval(r image.Rectangle) {
	m.arcSegment(r, 0, 360)
}

// FillOval fills the oval inscribed in r by horizontal spans.
func (m *Memory) FillOval(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	a := float64(r.Dx()-1) / 2
	b := float64(r.Dy()-1) / 2
	if a < 0.5 || b < 0.5 {
		m.FillRect(r, 0)
		return
	}
	cx := float64(r.Min.X) + a
	cy := float64(r.Min.Y) + b
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := (float64(y) - cy) / b
		f := 1 - dy*dy
		if f < 0 {
			continue
		}
		half := a * math.Sqrt(f)
		m.hspan(int(cx-half+0.5), int(cx+half+0.5), y)
	}
}

// Polyline connects consecutive points, skipping degenerate segments.
func (m *Memory) Polyline(pts []image.Point) {
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			continue
		}
		m.thickLine(pts[i-1], pts[i])
	}
}

// Polygon draws the outline described by pts, closing it when closed.
func (m *Memory) Polygon(pts []image.Point, closed bool) {
	m.Polyline(pts)
	if closed && len(pts) > 2 && pts[len(pts)-1] != pts[0] {
		m.thickLine(pts[len(pts)-1], pts[0])
	}
}

// FillPolygon fills pts with an even-odd scanline pass.
func (m *Memory) FillPolygon(pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	var xs []int
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		j := len(pts) - 1
		for i := range pts {
			a, b := pts[i], pts[j]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				x := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
				xs = append(xs, x)
			}
			j = i
		}
		for i := 1; i < len(xs); i++ {
			for k := i; k > 0 && xs[k-1] > xs[k]; k-- {
				xs[k-1], xs[k] = xs[k], xs[k-1]
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			m.hspan(xs[i], xs[i+1], y)
		}
	}
}

// Arc draws the arc of the oval inscribed in r from startDeg sweeping
// sweepDeg counterclockwise.
func (m *Memory) Arc(r image.Rectangle, startDeg, sweepDeg int) {
	m.arcSegment(r, startDeg, sweepDeg)
}

// arcSegment samples the ellipse parametrically at roughly one-pixel steps
// and connects the samples.
func (m *Memory) arcSegment(r image.Rectangle, startDeg, sweepDeg int) {
	r = r.Canon()
	if r.Empty() || sweepDeg == 0 {
		return
	}
	a := float64(r.Dx()-1) / 2
	b := float64(r.Dy()-1) / 2
	cx := float64(r.Min.X) + a
	cy := float64(r.Min.Y) + b
	steps := int(math.Pi * (a + b) * math.Abs(float64(sweepDeg)) / 360)
	if steps < 8 {
		steps = 8
	}
	prevSet := false
	var prev image.Point
	for i := 0; i <= steps; i++ {
		deg := float64(startDeg) + float64(sweepDeg)*float64(i)/float64(steps)
		rad := deg * math.Pi / 180
		p := image.Pt(int(cx+a*math.Cos(rad)+0.5), int(cy-b*math.Sin(rad)+0.5))
		if prevSet && p != prev {
			m.thickLine(prev, p)
		}
		prev = p
		prevSet = true
	}
}

// TextRun draws a text run with baseline origin (x, y). Characters render as
// solid boxes sized by the installed advance function; the surface has no
// glyph shapes of its own, only their footprint. Spaces advance without
// drawing.
func (m *Memory) TextRun(x, y int, s string) {
	cx := x
	for i := 0; i < len(s); i++ {
		ch := s[i]
		adv := m.advance(ch)
		if ch != ' ' && adv > 2 {
			m.FillRect(image.Rect(cx+1, y-m.ascent+2, cx+adv-1, y+1), 0)
		}
		cx += adv
	}
}

// Blit block-copies rectangle r from src. src must be a Memory surface with
// identical dimensions; anything else is a defect and halts.
func (m *Memory) Blit(src Surface, r image.Rectangle) {
	sm, ok := src.(*Memory)
	if !ok {
		panic("raster: Blit source is not a memory surface")
	}
	if sm.width != m.width || sm.height != m.height {
		panic(fmt.Sprintf("raster: Blit size mismatch %dx%d vs %dx%d", sm.width, sm.height, m.width, m.height))
	}
	r = r.Canon().Intersect(image.Rect(0, 0, m.width, m.height))
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * m.width
		copy(m.pix[row+r.Min.X:row+r.Max.X], sm.pix[row+r.Min.X:row+r.Max.X])
	}
	m.writes += r.Dx() * r.Dy()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampRounding(rounding int, r image.Rectangle) int {
	if rounding <= 0 {
		return 0
	}
	if max := (min(r.Dx(), r.Dy()) - 1) / 2; rounding > max {
		return max
	}
	return rounding
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
