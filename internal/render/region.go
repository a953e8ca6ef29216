package render

import "image"

// Region is the single dirty rectangle accumulated over one frame. It starts
// empty, widens to the bounding union of everything drawn, and is consumed
// exactly once by the compositor's blit. Whenever non-empty its min corner
// never exceeds its max corner.
type Region struct {
	rect  image.Rectangle
	empty bool
}

// NewRegion returns an empty region.
func NewRegion() Region {
	return Region{empty: true}
}

// Reset empties the region.
func (r *Region) Reset() {
	r.rect = image.Rectangle{}
	r.empty = true
}

// Empty reports whether the region covers no area.
func (r *Region) Empty() bool {
	return r.empty
}

// Rect returns the accumulated rectangle. Only meaningful when non-empty.
func (r *Region) Rect() image.Rectangle {
	return r.rect
}

// Add widens the region to include rect. Empty rectangles are ignored.
func (r *Region) Add(rect image.Rectangle) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	if r.empty {
		r.rect = rect
		r.empty = false
		return
	}
	r.rect = r.rect.Union(rect)
}
