package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/raster"
)

// Quantizer projects the engine's 4-channel colors onto the surface's
// ordered paint levels. Outlines reduce to a binary pen; fills map to one of
// five gray levels. The mapping is monotonic in lightness: a darker input
// never produces a lighter level. The exact thresholds are tunable; only the
// ordering is a contract.
type Quantizer struct {
	pen  float64
	cuts [4]float64
}

// NewQuantizer creates a quantizer with the default thresholds.
func NewQuantizer() *Quantizer {
	return &Quantizer{
		pen:  0.5,
		cuts: [4]float64{0.15, 0.38, 0.62, 0.85},
	}
}

// Luminance returns the perceptual lightness of c in [0, 1]: the CIE L*
// component of the color's Lab conversion, so the thresholds cut evenly
// across what the eye sees rather than across raw channel values.
func (q *Quantizer) Luminance(c command.Color) float64 {
	cc := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	l, _, _ := cc.Lab()
	switch {
	case l < 0:
		return 0
	case l > 1:
		return 1
	}
	return l
}

// Pen reduces c to the binary pen: Black below the pen threshold, White at
// or above it.
func (q *Quantizer) Pen(c command.Color) raster.Level {
	if q.Luminance(c) < q.pen {
		return raster.Black
	}
	return raster.White
}

// Fill maps c onto one of the five gray levels via four ascending lightness
// thresholds.
func (q *Quantizer) Fill(c command.Color) raster.Level {
	l := q.Luminance(c)
	switch {
	case l < q.cuts[0]:
		return raster.Black
	case l < q.cuts[1]:
		return raster.Gray3
	case l < q.cuts[2]:
		return raster.Gray2
	case l < q.cuts[3]:
		return raster.Gray1
	default:
		return raster.White
	}
}
