// Package engine declares the contract with the external immediate-mode UI
// engine. The engine owns widget layout and state; this backend only feeds
// it input and renders the command stream it emits. The interface mirrors
// the engine's C-shaped API: a pull accessor for the frame's commands, a
// begin/end input batch, and registration hooks for text measurement and
// clipboard callbacks.
package engine

import (
	"image"

	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/input/key"
)

// Engine is the upstream collaborator. Implementations are not owned by this
// module; the Fake stands in for tests and the demo.
//
// Input calls are only valid between BeginInput and EndInput, and the whole
// batch must be delivered on the single backend goroutine. Frame is pulled
// once per loop iteration after input delivery.
type Engine interface {
	// Frame recomputes the widget tree and returns the command buffer
	// for this frame. The buffer is borrowed: it is valid until the next
	// Frame call.
	Frame() *command.Buffer

	// BeginInput opens an input batch.
	BeginInput()

	// PointerMotion updates the engine's pointer position.
	PointerMotion(x, y int)

	// PointerButton reports a primary-button edge at (x, y).
	PointerButton(x, y int, down bool)

	// Key reports a semantic key edge.
	Key(k key.Key, down bool)

	// Char inserts a literal character into the focused text field.
	Char(r rune)

	// EndInput closes the input batch; the engine treats everything
	// inside as one atomic update.
	EndInput()

	// InsertText inserts clipboard or paste text into the focused field.
	InsertText(s string)

	// Caret reports the pixel position where the next appended character
	// of the focused text field would be drawn, and whether a text field
	// has focus at all.
	Caret() (pos image.Point, focused bool)

	// SetWidthFunc registers the backend's text measurement callback for
	// the engine's own layout pass.
	SetWidthFunc(width func(s string) int)

	// SetClipboard registers the backend's clipboard callbacks.
	SetClipboard(copyFn func(s string), pasteFn func())
}
