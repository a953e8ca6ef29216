package render

import (
	"image"

	"github.com/hferr/stencil/internal/raster"
)

// Compositor owns the offscreen surface and the frame's dirty region. The
// host has no native double buffering, so every frame draws offscreen first
// and only the touched rectangle is copied to the visible surface — the user
// never sees a partially drawn frame.
type Compositor struct {
	off    *raster.Memory
	region Region
}

// NewCompositor allocates the offscreen surface at the visible surface's
// size. Allocation failure here is fatal to startup; there is no recovery
// path on the target host.
func NewCompositor(width, height int) (*Compositor, error) {
	off, err := raster.NewMemory(width, height)
	if err != nil {
		return nil, err
	}
	return &Compositor{off: off, region: NewRegion()}, nil
}

// Surface returns the offscreen drawing target.
func (c *Compositor) Surface() *raster.Memory {
	return c.off
}

// Region returns the dirty region accumulated for the current frame.
func (c *Compositor) Region() *Region {
	return &c.region
}

// Begin resets the dirty region for a new frame.
func (c *Compositor) Begin() {
	c.region.Reset()
}

// Flush copies exactly the dirty rectangle from the offscreen surface to dst
// and resets the region. If nothing was drawn this frame the copy is skipped
// entirely. Returns the rectangle that was copied, zero if none.
func (c *Compositor) Flush(dst raster.Surface) image.Rectangle {
	if c.region.Empty() {
		return image.Rectangle{}
	}
	w, h := c.off.Size()
	rect := c.region.Rect().Intersect(image.Rect(0, 0, w, h))
	if !rect.Empty() {
		dst.Blit(c.off, rect)
	}
	c.region.Reset()
	return rect
}
