// Package term hosts the backend in a terminal via tcell. One surface pixel
// maps to one terminal cell, with the five paint levels shown as shade
// runes. It exists for development and the demo; the real host is the
// legacy machine's raster and event system.
package term

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/hferr/stencil/internal/raster"
)

// levelRunes maps paint levels to their terminal representation.
var levelRunes = [...]rune{' ', '░', '▒', '▓', '█'}

// Host is the terminal side of the platform: the visible surface, the event
// source, and the shared clipboard, all over one tcell screen.
//
// Drawing state and pixel storage live in an embedded software surface; the
// terminal is only repainted for the rectangles that arrive through Blit, so
// the bounded-copy discipline of the compositor carries through to terminal
// writes.
type Host struct {
	*raster.Memory

	screen tcell.Screen
	width  int
	height int

	queue      []raster.Event
	buttonDown bool
	pointerX   int
	pointerY   int
	pasting    bool
	pasteBuf   []rune
	clipText   string
	status     string
}

// NewHost initializes the terminal and creates a surface of the given pixel
// dimensions. The terminal should have at least width columns and height+1
// rows; smaller terminals simply crop.
func NewHost(width, height int) (*Host, error) {
	mem, err := raster.NewMemory(width, height)
	if err != nil {
		return nil, err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnablePaste()

	h := &Host{
		Memory: mem,
		screen: screen,
		width:  width,
		height: height,
	}
	return h, nil
}

// Fini restores the terminal.
func (h *Host) Fini() {
	h.screen.Fini()
}

// Interrupt requests shutdown from another goroutine, typically a signal
// handler. It is the only Host method safe to call off the loop goroutine.
func (h *Host) Interrupt() {
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// SetStatus draws a one-line status bar on the row below the surface,
// padded or truncated to the terminal width by display width.
func (h *Host) SetStatus(s string) {
	h.status = s
	h.paintStatus()
	h.screen.Show()
}

func (h *Host) paintStatus() {
	cols, _ := h.screen.Size()
	s := h.status
	if runewidth.StringWidth(s) > cols {
		s = runewidth.Truncate(s, cols, "…")
	}
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range s {
		h.screen.SetContent(x, h.height, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < cols; x++ {
		h.screen.SetContent(x, h.height, ' ', nil, style)
	}
}

// Blit copies the rectangle from the offscreen surface into the visible
// pixel store, then repaints exactly those cells.
func (h *Host) Blit(src raster.Surface, r image.Rectangle) {
	h.Memory.Blit(src, r)
	r = r.Canon().Intersect(image.Rect(0, 0, h.width, h.height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			h.screen.SetContent(x, y, levelRunes[h.Memory.LevelAt(x, y)], nil, tcell.StyleDefault)
		}
	}
	h.screen.Show()
}

// PollEvent blocks until a host event is available.
func (h *Host) PollEvent() raster.Event {
	for len(h.queue) == 0 {
		h.convert(h.screen.PollEvent())
	}
	ev := h.queue[0]
	h.queue = h.queue[1:]
	return ev
}

// HasEvent reports whether PollEvent would return without blocking.
func (h *Host) HasEvent() bool {
	return len(h.queue) > 0 || h.screen.HasPendingEvent()
}

// PostEvent injects a synthetic event.
func (h *Host) PostEvent(ev raster.Event) {
	h.queue = append(h.queue, ev)
}

// SetText publishes text to the system clipboard via OSC 52 and mirrors it
// locally for hosts whose terminal cannot report the clipboard back.
func (h *Host) SetText(s string) {
	h.clipText = s
	h.screen.SetClipboard([]byte(s))
}

// Text returns the last known clipboard text. A refresh is requested from
// the terminal; the reply arrives asynchronously as a clipboard event and
// updates the mirror for the next call.
func (h *Host) Text() string {
	h.screen.GetClipboard()
	return h.clipText
}

// convert translates one tcell event into zero or more host events.
func (h *Host) convert(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		h.convertKey(e)

	case *tcell.EventMouse:
		h.convertMouse(e)

	case *tcell.EventResize:
		w, hh := e.Size()
		h.paintStatus()
		h.screen.Show()
		h.push(raster.Event{Type: raster.EventResize, When: e.When(), Width: w, Height: hh})

	case *tcell.EventPaste:
		if e.Start() {
			h.pasting = true
			h.pasteBuf = h.pasteBuf[:0]
			return
		}
		h.pasting = false
		if len(h.pasteBuf) > 0 {
			h.push(raster.Event{Type: raster.EventPaste, When: e.When(), Text: string(h.pasteBuf)})
		}

	case *tcell.EventClipboard:
		h.clipText = string(e.Data())

	case *tcell.EventInterrupt:
		h.push(raster.Event{Type: raster.EventQuit, When: e.When()})
	}
}

func (h *Host) convertKey(e *tcell.EventKey) {
	if h.pasting {
		switch e.Key() {
		case tcell.KeyRune:
			h.pasteBuf = append(h.pasteBuf, e.Rune())
		case tcell.KeyEnter:
			h.pasteBuf = append(h.pasteBuf, '\n')
		case tcell.KeyTab:
			h.pasteBuf = append(h.pasteBuf, '\t')
		}
		return
	}

	if e.Key() == tcell.KeyCtrlQ {
		h.push(raster.Event{Type: raster.EventQuit, When: e.When()})
		return
	}

	code, r, mod := translateKey(e)
	if code == raster.CodeNone && r == 0 {
		return
	}
	// Terminals report presses only; synthesize the release edge so the
	// engine sees complete key cycles.
	down := raster.Event{Type: raster.EventKeyEdge, When: e.When(), Code: code, Rune: r, Mod: mod, Down: true}
	up := down
	up.Down = false
	h.push(down)
	h.push(up)
}

func (h *Host) convertMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	if y >= h.height {
		return
	}
	if x != h.pointerX || y != h.pointerY {
		h.pointerX, h.pointerY = x, y
		h.push(raster.Event{Type: raster.EventPointerMotion, When: e.When(), X: x, Y: y})
	}
	down := e.Buttons()&tcell.Button1 != 0
	if down != h.buttonDown {
		h.buttonDown = down
		h.push(raster.Event{
			Type:   raster.EventPointerButton,
			When:   e.When(),
			X:      x,
			Y:      y,
			Button: raster.ButtonPrimary,
			Down:   down,
		})
	}
}

func (h *Host) push(ev raster.Event) {
	h.queue = append(h.queue, ev)
}

// translateKey maps a tcell key event onto the host's raw code space.
func translateKey(e *tcell.EventKey) (code int, r rune, mod raster.Mod) {
	m := e.Modifiers()
	if m&tcell.ModShift != 0 {
		mod |= raster.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= raster.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= raster.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= raster.ModMeta
	}

	// Enter, Tab and Backspace live inside the control-character range, so
	// they must match before the generic Ctrl+letter case.
	switch k := e.Key(); {
	case k == tcell.KeyRune:
		return raster.CodeNone, e.Rune(), mod
	case k == tcell.KeyEnter:
		return raster.CodeReturn, 0, mod
	case k == tcell.KeyTab:
		return raster.CodeTab, 0, mod
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return raster.CodeBackspace, 0, mod
	case k == tcell.KeyDelete:
		return raster.CodeDelete, 0, mod
	case k == tcell.KeyEscape:
		return raster.CodeEscape, 0, mod
	case k == tcell.KeyUp:
		return raster.CodeUp, 0, mod
	case k == tcell.KeyDown:
		return raster.CodeDown, 0, mod
	case k == tcell.KeyLeft:
		return raster.CodeLeft, 0, mod
	case k == tcell.KeyRight:
		return raster.CodeRight, 0, mod
	case k == tcell.KeyPgUp:
		return raster.CodePageUp, 0, mod
	case k == tcell.KeyPgDn:
		return raster.CodePageDown, 0, mod
	case k == tcell.KeyHome:
		return raster.CodeHome, 0, mod
	case k == tcell.KeyEnd:
		return raster.CodeEnd, 0, mod
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return raster.CodeNone, rune('a' + k - tcell.KeyCtrlA), mod | raster.ModCtrl
	default:
		return raster.CodeNone, 0, mod
	}
}
