// Package command defines the draw command stream emitted by the UI engine.
// A command is one atomic draw or state-change instruction; a Buffer holds the
// ordered commands for exactly one frame. Order is significant: commands paint
// back-to-front, and a Scissor applies to everything after it until the next
// Scissor.
package command

import "image"

// Kind identifies the type of a draw command.
type Kind uint8

const (
	Nop Kind = iota
	Scissor
	Rect
	RectFilled
	Line
	Circle
	CircleFilled
	Triangle
	TriangleFilled
	Polygon
	PolygonFilled
	Polyline
	Curve
	Arc
	Text
	Image

	// kindCount bounds the valid tag range. Tags at or above this value
	// only appear when the arena is corrupt.
	kindCount
)

// String returns the string representation of the command kind.
func (k Kind) String() string {
	switch k {
	case Nop:
		return "nop"
	case Scissor:
		return "scissor"
	case Rect:
		return "rect"
	case RectFilled:
		return "rect-filled"
	case Line:
		return "line"
	case Circle:
		return "circle"
	case CircleFilled:
		return "circle-filled"
	case Triangle:
		return "triangle"
	case TriangleFilled:
		return "triangle-filled"
	case Polygon:
		return "polygon"
	case PolygonFilled:
		return "polygon-filled"
	case Polyline:
		return "polyline"
	case Curve:
		return "curve"
	case Arc:
		return "arc"
	case Text:
		return "text"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Valid reports whether the kind is within the defined tag range.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Color is a 4-channel color as produced by the engine. The backend never
// displays it directly; it is reduced to a pen or fill level first.
type Color struct {
	R, G, B, A uint8
}

// Common colors used by tests and the demo engine.
var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
	ColorGray  = Color{128, 128, 128, 255}
)

// NullClip is the engine's "no active clip" sentinel. A Scissor carrying this
// rectangle clears the clip instead of setting one, and does not widen the
// dirty region.
var NullClip = image.Rect(-8192, -8192, 8192, 8192)

// IsNullClip reports whether r is the no-clip sentinel.
func IsNullClip(r image.Rectangle) bool {
	return r == NullClip
}

// Command is one entry of a frame's draw stream. Which fields are meaningful
// depends on Kind:
//
//	Scissor                  Rect (NullClip clears the clip)
//	Rect, RectFilled         Rect, Color, Thickness, Rounding
//	Line                     From, To, Color, Thickness
//	Circle, CircleFilled     Rect (bounding box), Color, Thickness
//	Triangle, TriangleFilled Pts (3 vertices), Color, Thickness
//	Polygon, PolygonFilled   Pts, Color, Thickness
//	Polyline                 Pts, Color, Thickness
//	Curve                    Pts (4 control points), Color, Thickness
//	Arc                      Rect (bounding box), StartDeg, SweepDeg, Color, Thickness
//	Text                     Pos (baseline origin), Text, Color
//	Image                    accepted, intentionally not rendered
//
// Commands are produced by the engine and read-only to the backend.
type Command struct {
	Kind Kind

	Rect     image.Rectangle
	From, To image.Point
	Pos      image.Point
	Pts      []image.Point

	Color     Color
	Thickness int
	Rounding  int
	StartDeg  int
	SweepDeg  int
	Text      string
}
