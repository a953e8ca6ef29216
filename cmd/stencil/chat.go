package main

import (
	"image"
	"strings"

	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/input/key"
)

// chatEngine is a stand-in for the real UI engine: a message list and one
// focused input field, enough to push every command kind through the
// backend and react to translated input.
type chatEngine struct {
	width  int
	height int
	buf    *command.Buffer

	messages []string
	input    []rune
	pointer  image.Point
	batch    bool

	widthFn func(string) int
	copyFn  func(string)
	pasteFn func()
}

func newChatEngine(width, height int) *chatEngine {
	return &chatEngine{
		width:    width,
		height:   height,
		buf:      command.NewBuffer(0, 0),
		messages: []string{"hello!", "try typing below"},
		widthFn:  func(s string) int { return 7 * len(s) },
	}
}

func (e *chatEngine) Frame() *command.Buffer {
	b := e.buf
	b.Reset()

	w, h := e.width, e.height
	inputTop := h - 5

	b.PushRectFilled(image.Rect(0, 0, w, h), command.ColorWhite, 0)
	b.PushRectFilled(image.Rect(0, 0, w, 3), command.ColorGray, 0)
	b.PushText(image.Pt(2, 2), "chat", command.ColorBlack)

	b.PushScissor(image.Rect(0, 3, w, inputTop))
	y := 5
	for _, msg := range e.messages {
		b.PushText(image.Pt(3, y), msg, command.ColorBlack)
		y += 4
	}
	b.PushScissor(command.NullClip)

	b.PushRect(image.Rect(1, inputTop, w-8, h-1), command.ColorBlack, 1, 2)
	b.PushText(image.Pt(3, h-2), string(e.input), command.ColorBlack)

	// Send button: circle with a triangle glyph.
	b.PushCircleFilled(image.Rect(w-7, inputTop, w-1, h-1), command.ColorGray)
	b.PushTriangleFilled(
		image.Pt(w-6, inputTop+1),
		image.Pt(w-6, h-2),
		image.Pt(w-2, inputTop+(h-1-inputTop)/2),
		command.ColorBlack,
	)
	return b
}

func (e *chatEngine) BeginInput() { e.batch = true }
func (e *chatEngine) EndInput()   { e.batch = false }

func (e *chatEngine) PointerMotion(x, y int) {
	e.pointer = image.Pt(x, y)
}

func (e *chatEngine) PointerButton(x, y int, down bool) {
	// Clicking the send button submits, same as Enter.
	if down && x >= e.width-7 && y >= e.height-5 {
		e.submit()
	}
}

func (e *chatEngine) Key(k key.Key, down bool) {
	if !down {
		return
	}
	switch k {
	case key.Enter:
		e.submit()
	case key.Backspace:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case key.Copy:
		if e.copyFn != nil {
			e.copyFn(string(e.input))
		}
	case key.Cut:
		if e.copyFn != nil {
			e.copyFn(string(e.input))
		}
		e.input = e.input[:0]
	case key.Paste:
		if e.pasteFn != nil {
			e.pasteFn()
		}
	}
}

func (e *chatEngine) Char(r rune) {
	e.input = append(e.input, r)
}

func (e *chatEngine) InsertText(s string) {
	s = strings.ReplaceAll(s, "\n", " ")
	e.input = append(e.input, []rune(s)...)
}

func (e *chatEngine) Caret() (image.Point, bool) {
	return image.Pt(3+e.widthFn(string(e.input)), e.height-2), true
}

func (e *chatEngine) SetWidthFunc(width func(string) int) {
	e.widthFn = width
}

func (e *chatEngine) SetClipboard(copyFn func(string), pasteFn func()) {
	e.copyFn = copyFn
	e.pasteFn = pasteFn
}

func (e *chatEngine) submit() {
	if len(e.input) == 0 {
		return
	}
	e.messages = append(e.messages, string(e.input))
	if len(e.messages) > 8 {
		e.messages = e.messages[len(e.messages)-8:]
	}
	e.input = e.input[:0]
}
