// Package raster abstracts the host drawing surface and event source. The
// host model is deliberately primitive: a monochrome-biased surface with a
// current pen level, a current stroke width, a replaceable clip rectangle,
// and a small set of shape primitives. Implementations draw to an in-memory
// framebuffer (Memory) or to a terminal (raster/term).
package raster

import (
	"image"
	"time"
)

// Level is one of the five ordered paint levels the surface can show,
// from lightest to darkest. White and Black double as the binary pen for
// outline work.
type Level uint8

const (
	White Level = iota
	Gray1
	Gray2
	Gray3
	Black

	levelCount
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case White:
		return "white"
	case Gray1:
		return "gray1"
	case Gray2:
		return "gray2"
	case Gray3:
		return "gray3"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// Surface is a host drawing target. All coordinates are pixels with the
// origin at the top left. Drawing honors the current pen level, stroke
// width, and clip rectangle; state set here stays in force until changed.
//
// Surfaces are not safe for concurrent use; the backend is single-threaded
// by design.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// SetLevel sets the pen level for subsequent drawing.
	SetLevel(l Level)

	// SetStroke sets the stroke width in pixels for outline primitives.
	// Widths below 1 are clamped to 1.
	SetStroke(w int)

	// SetClip replaces the active clip rectangle. Pixels outside it are
	// not touched by any primitive. The rectangle is clamped to the
	// surface bounds.
	SetClip(r image.Rectangle)

	// StrokeRect outlines a rectangle with rounded corners of the given
	// radius (0 for square corners).
	StrokeRect(r image.Rectangle, rounding int)

	// FillRect fills a rectangle with rounded corners.
	FillRect(r image.Rectangle, rounding int)

	// StrokeOval outlines the oval inscribed in r.
	StrokeOval(r image.Rectangle)

	// FillOval fills the oval inscribed in r.
	FillOval(r image.Rectangle)

	// Polyline connects consecutive points with line segments.
	Polyline(pts []image.Point)

	// Polygon connects consecutive points, closing back to the first
	// when closed is true.
	Polygon(pts []image.Point, closed bool)

	// FillPolygon fills the polygon described by pts.
	FillPolygon(pts []image.Point)

	// Arc draws the arc of the oval inscribed in r, starting at startDeg
	// and sweeping sweepDeg counterclockwise.
	Arc(r image.Rectangle, startDeg, sweepDeg int)

	// TextRun draws a text run with its baseline origin at (x, y).
	TextRun(x, y int, s string)

	// Blit block-copies rectangle r from src onto this surface. Both
	// surfaces must have identical dimensions; a mismatch is a
	// programming defect and halts.
	Blit(src Surface, r image.Rectangle)
}

// EventType identifies the type of a host event.
type EventType int

const (
	EventNone EventType = iota
	EventPointerMotion
	EventPointerButton
	EventKeyEdge
	EventPaste
	EventResize
	EventQuit
)

// Button identifies a pointer button. Only the primary button is in scope;
// hosts report others but the translator ignores them.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonTertiary
)

// Mod is a host modifier bitmask.
type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether the mask contains the given modifier.
func (m Mod) Has(mod Mod) bool {
	return m&mod != 0
}

// Event is one timestamped host input event. It is transient: the input
// translator consumes it and never stores it past translation.
type Event struct {
	Type EventType
	When time.Time

	// Pointer fields.
	X, Y   int
	Button Button
	Down   bool

	// Keyboard fields. Code is the host's raw key code; Rune carries the
	// literal character where the host reports one.
	Code int
	Rune rune
	Mod  Mod

	// Paste fields.
	Text string

	// Resize fields.
	Width, Height int
}

// Host is the event-producing side of the platform. PollEvent blocks; the
// loop drains with HasEvent/PollEvent pairs so a quiet host costs nothing.
type Host interface {
	// PollEvent waits for and returns the next host event.
	PollEvent() Event

	// HasEvent reports whether an event is ready without blocking.
	HasEvent() bool

	// PostEvent injects a synthetic event, used by tests and shutdown.
	PostEvent(ev Event)
}
