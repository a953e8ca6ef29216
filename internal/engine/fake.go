package engine

import (
	"fmt"
	"image"

	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/input/key"
)

// Fake is a recording engine for tests and the demo. It replays scripted
// frames from its BuildFrame hook and records every input call in order so
// tests can assert on exact delivery.
type Fake struct {
	// BuildFrame fills buf for the next frame. Nil leaves the buffer as
	// the test prepared it.
	BuildFrame func(buf *command.Buffer)

	// Calls records the input call sequence as printable strings.
	Calls []string

	// CaretPos and CaretFocused drive the Caret report. Char advances
	// CaretPos by the registered width callback, like a real text field.
	CaretPos     image.Point
	CaretFocused bool

	// Inserted accumulates InsertText payloads.
	Inserted []string

	buf      *command.Buffer
	widthFn  func(string) int
	copyFn   func(string)
	pasteFn  func()
	batched  bool
	batchErr bool
}

// NewFake creates a fake engine with a buffer of default capacity.
func NewFake() *Fake {
	return &Fake{buf: command.NewBuffer(0, 0)}
}

// Buffer exposes the underlying command buffer so tests can pre-fill it.
func (f *Fake) Buffer() *command.Buffer {
	return f.buf
}

// Frame returns the scripted command buffer for this frame.
func (f *Fake) Frame() *command.Buffer {
	if f.BuildFrame != nil {
		f.buf.Reset()
		f.BuildFrame(f.buf)
	}
	return f.buf
}

func (f *Fake) record(s string) {
	if !f.batched {
		// Input outside a batch violates the delivery contract; remember
		// it so tests fail loudly.
		f.batchErr = true
		s = "UNBATCHED:" + s
	}
	f.Calls = append(f.Calls, s)
}

// BeginInput opens an input batch.
func (f *Fake) BeginInput() {
	f.Calls = append(f.Calls, "begin")
	f.batched = true
}

// EndInput closes the input batch.
func (f *Fake) EndInput() {
	f.Calls = append(f.Calls, "end")
	f.batched = false
}

// PointerMotion records a pointer move.
func (f *Fake) PointerMotion(x, y int) {
	f.record(fmt.Sprintf("motion(%d,%d)", x, y))
}

// PointerButton records a primary-button edge.
func (f *Fake) PointerButton(x, y int, down bool) {
	f.record(fmt.Sprintf("button(%d,%d,%v)", x, y, down))
}

// Key records a semantic key edge.
func (f *Fake) Key(k key.Key, down bool) {
	f.record(fmt.Sprintf("key(%s,%v)", k, down))
}

// Char records a literal character insertion and moves the caret past it.
func (f *Fake) Char(r rune) {
	f.record(fmt.Sprintf("char(%c)", r))
	if f.widthFn != nil {
		f.CaretPos.X += f.widthFn(string(r))
	}
}

// InsertText records a text insertion. Unlike the batch calls it may also
// arrive from a clipboard paste outside a batch.
func (f *Fake) InsertText(s string) {
	f.Inserted = append(f.Inserted, s)
	f.Calls = append(f.Calls, fmt.Sprintf("insert(%q)", s))
}

// Caret reports the scripted caret state.
func (f *Fake) Caret() (image.Point, bool) {
	return f.CaretPos, f.CaretFocused
}

// SetWidthFunc records the registered width callback.
func (f *Fake) SetWidthFunc(width func(string) int) {
	f.widthFn = width
}

// WidthFunc returns the registered width callback.
func (f *Fake) WidthFunc() func(string) int {
	return f.widthFn
}

// SetClipboard records the registered clipboard callbacks.
func (f *Fake) SetClipboard(copyFn func(string), pasteFn func()) {
	f.copyFn = copyFn
	f.pasteFn = pasteFn
}

// ClipboardFuncs returns the registered clipboard callbacks.
func (f *Fake) ClipboardFuncs() (func(string), func()) {
	return f.copyFn, f.pasteFn
}

// SawUnbatchedInput reports whether any input call arrived outside a
// begin/end batch.
func (f *Fake) SawUnbatchedInput() bool {
	return f.batchErr
}
