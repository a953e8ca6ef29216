package command

import (
	"fmt"
	"image"
)

// Default buffer capacities. The command list and points arena are sized once
// at init and never grow; overflowing either is a programming defect in the
// engine, not a recoverable condition.
const (
	DefaultMaxCommands = 4096
	DefaultMaxPoints   = 16384
)

// Buffer holds the ordered draw commands for a single frame. Capacity is
// fixed at construction; Reset reuses the same backing storage every frame so
// steady-state operation performs no allocation.
type Buffer struct {
	cmds []Command
	pts  []image.Point
}

// NewBuffer creates a buffer with the given command and point capacities.
// Zero or negative capacities fall back to the defaults.
func NewBuffer(maxCommands, maxPoints int) *Buffer {
	if maxCommands <= 0 {
		maxCommands = DefaultMaxCommands
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &Buffer{
		cmds: make([]Command, 0, maxCommands),
		pts:  make([]image.Point, 0, maxPoints),
	}
}

// Reset empties the buffer for the next frame without releasing storage.
func (b *Buffer) Reset() {
	b.cmds = b.cmds[:0]
	b.pts = b.pts[:0]
}

// Len returns the number of commands in the buffer.
func (b *Buffer) Len() int {
	return len(b.cmds)
}

// Commands returns the command slice for iteration. Callers must not retain
// it past the next Reset.
func (b *Buffer) Commands() []Command {
	return b.cmds
}

// push appends a command, halting on capacity overflow.
func (b *Buffer) push(c Command) {
	if len(b.cmds) == cap(b.cmds) {
		panic(fmt.Sprintf("command: buffer overflow at %d commands", cap(b.cmds)))
	}
	b.cmds = append(b.cmds, c)
}

// claimPoints copies pts into the points arena and returns the arena-backed
// slice. The arena never reallocates; overflow halts.
func (b *Buffer) claimPoints(pts []image.Point) []image.Point {
	if len(b.pts)+len(pts) > cap(b.pts) {
		panic(fmt.Sprintf("command: points arena overflow at %d points", cap(b.pts)))
	}
	start := len(b.pts)
	b.pts = append(b.pts, pts...)
	return b.pts[start : start+len(pts) : start+len(pts)]
}

// PushNop appends a no-op command.
func (b *Buffer) PushNop() {
	b.push(Command{Kind: Nop})
}

// PushScissor appends a clip change. The new rectangle replaces any active
// clip; NullClip clears it.
func (b *Buffer) PushScissor(r image.Rectangle) {
	b.push(Command{Kind: Scissor, Rect: r})
}

// PushRect appends a stroked, optionally rounded rectangle.
func (b *Buffer) PushRect(r image.Rectangle, c Color, thickness, rounding int) {
	b.push(Command{Kind: Rect, Rect: r, Color: c, Thickness: thickness, Rounding: rounding})
}

// PushRectFilled appends a filled, optionally rounded rectangle.
func (b *Buffer) PushRectFilled(r image.Rectangle, c Color, rounding int) {
	b.push(Command{Kind: RectFilled, Rect: r, Color: c, Rounding: rounding})
}

// PushLine appends a line segment.
func (b *Buffer) PushLine(from, to image.Point, c Color, thickness int) {
	b.push(Command{Kind: Line, From: from, To: to, Color: c, Thickness: thickness})
}

// PushCircle appends a stroked oval inscribed in r.
func (b *Buffer) PushCircle(r image.Rectangle, c Color, thickness int) {
	b.push(Command{Kind: Circle, Rect: r, Color: c, Thickness: thickness})
}

// PushCircleFilled appends a filled oval inscribed in r.
func (b *Buffer) PushCircleFilled(r image.Rectangle, c Color) {
	b.push(Command{Kind: CircleFilled, Rect: r, Color: c})
}

// PushTriangle appends a stroked triangle.
func (b *Buffer) PushTriangle(a, p2, p3 image.Point, c Color, thickness int) {
	b.push(Command{Kind: Triangle, Pts: b.claimPoints([]image.Point{a, p2, p3}), Color: c, Thickness: thickness})
}

// PushTriangleFilled appends a filled triangle.
func (b *Buffer) PushTriangleFilled(a, p2, p3 image.Point, c Color) {
	b.push(Command{Kind: TriangleFilled, Pts: b.claimPoints([]image.Point{a, p2, p3}), Color: c})
}

// PushPolygon appends a stroked closed polygon.
func (b *Buffer) PushPolygon(pts []image.Point, c Color, thickness int) {
	b.push(Command{Kind: Polygon, Pts: b.claimPoints(pts), Color: c, Thickness: thickness})
}

// PushPolygonFilled appends a filled polygon.
func (b *Buffer) PushPolygonFilled(pts []image.Point, c Color) {
	b.push(Command{Kind: PolygonFilled, Pts: b.claimPoints(pts), Color: c})
}

// PushPolyline appends an open polyline.
func (b *Buffer) PushPolyline(pts []image.Point, c Color, thickness int) {
	b.push(Command{Kind: Polyline, Pts: b.claimPoints(pts), Color: c, Thickness: thickness})
}

// PushCurve appends a cubic Bezier: endpoint, control, control, endpoint.
func (b *Buffer) PushCurve(p0, p1, p2, p3 image.Point, c Color, thickness int) {
	b.push(Command{Kind: Curve, Pts: b.claimPoints([]image.Point{p0, p1, p2, p3}), Color: c, Thickness: thickness})
}

// PushArc appends an arc within bounding box r from startDeg sweeping
// sweepDeg counterclockwise.
func (b *Buffer) PushArc(r image.Rectangle, startDeg, sweepDeg int, c Color, thickness int) {
	b.push(Command{Kind: Arc, Rect: r, StartDeg: startDeg, SweepDeg: sweepDeg, Color: c, Thickness: thickness})
}

// PushText appends a text run with its baseline origin at pos.
func (b *Buffer) PushText(pos image.Point, s string, c Color) {
	b.push(Command{Kind: Text, Pos: pos, Text: s, Color: c})
}

// PushImage appends an image command. The backend accepts and skips it.
func (b *Buffer) PushImage(r image.Rectangle) {
	b.push(Command{Kind: Image, Rect: r})
}
