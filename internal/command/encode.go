package command

import (
	"encoding/binary"
	"fmt"
	"image"
)

// DefaultArenaSize is the default byte capacity of the frame arena used for
// change detection. It must be large enough for any frame the engine can
// produce; overflow halts per the error model.
const DefaultArenaSize = 128 * 1024

// EncodeTo writes a stable little-endian byte image of the buffer into dst
// and returns the number of bytes written. Two frames encode to identical
// bytes iff their command streams are identical, which is what the frame
// differ relies on: a byte mismatch may over-report a change but can never
// hide one.
//
// dst is a fixed-capacity arena allocated at init. Running out of space, or
// encountering a command tag outside the defined range, is a programming
// defect and halts with the failing offset.
func (b *Buffer) EncodeTo(dst []byte) int {
	off := 0
	for i := range b.cmds {
		c := &b.cmds[i]
		if !c.Kind.Valid() {
			panic(fmt.Sprintf("command: invalid tag %d at command %d", c.Kind, i))
		}
		need := encodedSize(c)
		if off+need > len(dst) {
			panic(fmt.Sprintf("command: arena overflow at command %d offset %d", i, off))
		}
		off += encodeCommand(dst[off:], c)
	}
	return off
}

// encodedSize returns the exact encoded length of one command.
func encodedSize(c *Command) int {
	// tag + rect + from/to + pos + thickness/rounding/angles + color
	n := 1 + 16 + 16 + 8 + 16 + 4
	n += 4 + len(c.Pts)*8
	n += 4 + len(c.Text)
	return n
}

func encodeCommand(dst []byte, c *Command) int {
	off := 0
	dst[off] = byte(c.Kind)
	off++
	off += putRect(dst[off:], c.Rect)
	off += putPoint(dst[off:], c.From)
	off += putPoint(dst[off:], c.To)
	off += putPoint(dst[off:], c.Pos)
	binary.LittleEndian.PutUint32(dst[off:], uint32(int32(c.Thickness)))
	binary.LittleEndian.PutUint32(dst[off+4:], uint32(int32(c.Rounding)))
	binary.LittleEndian.PutUint32(dst[off+8:], uint32(int32(c.StartDeg)))
	binary.LittleEndian.PutUint32(dst[off+12:], uint32(int32(c.SweepDeg)))
	off += 16
	dst[off] = c.Color.R
	dst[off+1] = c.Color.G
	dst[off+2] = c.Color.B
	dst[off+3] = c.Color.A
	off += 4
	binary.LittleEndian.PutUint32(dst[off:], uint32(len(c.Pts)))
	off += 4
	for _, p := range c.Pts {
		off += putPoint(dst[off:], p)
	}
	binary.LittleEndian.PutUint32(dst[off:], uint32(len(c.Text)))
	off += 4
	off += copy(dst[off:], c.Text)
	return off
}

func putPoint(dst []byte, p image.Point) int {
	binary.LittleEndian.PutUint32(dst, uint32(int32(p.X)))
	binary.LittleEndian.PutUint32(dst[4:], uint32(int32(p.Y)))
	return 8
}

func putRect(dst []byte, r image.Rectangle) int {
	putPoint(dst, r.Min)
	putPoint(dst[8:], r.Max)
	return 16
}
