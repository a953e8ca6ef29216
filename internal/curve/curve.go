// Package curve flattens cubic Bezier curves into polylines using a fixed
// subdivision count and precomputed Bernstein weights. The weight table is
// built once at init; per-curve work is a handful of multiply-adds per
// sample, cheap enough for a slow host.
package curve

import "image"

// DefaultSegments balances visual smoothness against per-curve cost.
const DefaultSegments = 16

// Tessellator converts 4 control points into n+1 polyline samples.
type Tessellator struct {
	n       int
	weights [][4]float64
}

// New creates a tessellator with the given subdivision count. Counts below 1
// fall back to DefaultSegments.
func New(n int) *Tessellator {
	if n < 1 {
		n = DefaultSegments
	}
	t := &Tessellator{
		n:       n,
		weights: make([][4]float64, n+1),
	}
	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		v := 1 - u
		t.weights[i] = [4]float64{
			v * v * v,
			3 * v * v * u,
			3 * v * u * u,
			u * u * u,
		}
	}
	return t
}

// Segments returns the subdivision count.
func (t *Tessellator) Segments() int {
	return t.n
}

// Flatten appends the sample polyline for the curve p0,p1,p2,p3 to dst and
// returns it. The first sample is exactly p0 and the last exactly p3,
// independent of the subdivision count; interior samples that repeat their
// predecessor are dropped.
func (t *Tessellator) Flatten(p0, p1, p2, p3 image.Point, dst []image.Point) []image.Point {
	dst = append(dst, p0)
	for i := 1; i < t.n; i++ {
		w := t.weights[i]
		x := w[0]*float64(p0.X) + w[1]*float64(p1.X) + w[2]*float64(p2.X) + w[3]*float64(p3.X)
		y := w[0]*float64(p0.Y) + w[1]*float64(p1.Y) + w[2]*float64(p2.Y) + w[3]*float64(p3.Y)
		p := image.Pt(int(x+0.5), int(y+0.5))
		if p != dst[len(dst)-1] {
			dst = append(dst, p)
		}
	}
	if p3 != dst[len(dst)-1] {
		dst = append(dst, p3)
	} else if len(dst) == 1 {
		// Fully degenerate curve: keep a single point so callers see
		// the endpoint guarantee without drawing anything.
		dst = append(dst, p3)
	}
	return dst
}
