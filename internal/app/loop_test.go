package app

import (
	"errors"
	"image"
	"strconv"
	"testing"

	"github.com/hferr/stencil/internal/clipboard"
	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/engine"
	"github.com/hferr/stencil/internal/glyphs"
	"github.com/hferr/stencil/internal/raster"
)

// scriptHost is a raster.Host whose events are queued by the test. Tests
// queue events (or rely on pending pump frames) before every Step so
// PollEvent never has to block; an empty poll fails the test loudly.
type scriptHost struct {
	t      *testing.T
	events []raster.Event
}

func (h *scriptHost) PollEvent() raster.Event {
	if len(h.events) == 0 {
		h.t.Fatal("PollEvent on empty script host: the step would block")
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev
}

func (h *scriptHost) HasEvent() bool {
	return len(h.events) > 0
}

func (h *scriptHost) PostEvent(ev raster.Event) {
	h.events = append(h.events, ev)
}

func newTestLoop(t *testing.T, eng *engine.Fake) (*Loop, *scriptHost, *raster.Memory) {
	t.Helper()
	host := &scriptHost{t: t}
	visible, err := raster.NewMemory(64, 64)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	l, err := New(eng, host, visible, &clipboard.Memory{}, Options{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, host, visible
}

// drainStartupFrames runs the initial pipeline passes so subsequent steps
// are gated purely by events and the frame diff.
func drainStartupFrames(t *testing.T, l *Loop) {
	t.Helper()
	for i := 0; i < DefaultForceRedrawFrames; i++ {
		if err := l.Step(); err != nil {
			t.Fatalf("startup step %d: %v", i, err)
		}
	}
}

func charDown(r rune) raster.Event {
	return raster.Event{Type: raster.EventKeyEdge, Rune: r, Down: true}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(engine.NewFake(), &scriptHost{t: t}, nil, &clipboard.Memory{}, Options{Width: tt.w, Height: tt.h})
			if !errors.Is(err, ErrBadOptions) {
				t.Errorf("New error = %v, want ErrBadOptions", err)
			}
		})
	}
}

func TestNewRegistersWidthFunc(t *testing.T) {
	eng := engine.NewFake()
	newTestLoop(t, eng)
	width := eng.WidthFunc()
	if width == nil {
		t.Fatal("width callback not registered")
	}
	if got, want := width("Hi"), glyphs.NewTable().Width("Hi"); got != want {
		t.Errorf("width(\"Hi\") = %d, want %d", got, want)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	eng := engine.NewFake()
	l, host, _ := newTestLoop(t, eng)
	host.PostEvent(raster.Event{Type: raster.EventQuit})
	if err := l.Run(); err != nil {
		t.Errorf("Run() = %v, want nil on quit", err)
	}
}

func TestInitialFramesRenderWithoutInput(t *testing.T) {
	eng := engine.NewFake()
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	l, _, visible := newTestLoop(t, eng)

	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() == 0 {
		t.Error("first frame did not reach the visible surface")
	}
	if visible.LevelAt(30, 30) != raster.Black {
		t.Error("first frame content missing")
	}
}

func TestUnchangedFrameWithoutInputSkipsRender(t *testing.T) {
	eng := engine.NewFake()
	frames := 0
	eng.BuildFrame = func(buf *command.Buffer) {
		frames++
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	// A literal key release delivers nothing to the engine, so with the
	// forced frames used up the step must not render at all.
	host.PostEvent(raster.Event{Type: raster.EventKeyEdge, Rune: 'a', Down: false})
	visible.ResetWrites()
	before := frames
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() != 0 {
		t.Errorf("visible writes = %d for an undelivered batch, want 0", visible.Writes())
	}
	if frames != before {
		t.Errorf("engine frame built %d times, want 0", frames-before)
	}
}

func TestChangedFrameRenders(t *testing.T) {
	eng := engine.NewFake()
	// The frame reflects how much input the engine has seen, so delivered
	// input changes the encoding and the differ lets the draw through.
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorWhite, 0)
		buf.PushText(image.Pt(2, 12), strconv.Itoa(len(eng.Calls)), command.ColorBlack)
	}
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(charDown('a'))
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() == 0 {
		t.Error("changed frame after input did not render")
	}
	// The input reached the engine inside one batch.
	found := false
	for _, c := range eng.Calls {
		if c == "char(a)" {
			found = true
		}
	}
	if !found {
		t.Errorf("engine calls = %v, want char(a) delivered", eng.Calls)
	}
	if eng.SawUnbatchedInput() {
		t.Error("input reached the engine outside a batch")
	}
}

func TestIdenticalFrameWithInputSkipsDraw(t *testing.T) {
	eng := engine.NewFake()
	frames := 0
	eng.BuildFrame = func(buf *command.Buffer) {
		frames++
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	// Pointer motion is delivered to the engine, but the frame it emits is
	// byte-identical to the committed one: the pipeline must run and the
	// differ must suppress the draw.
	host.PostEvent(raster.Event{Type: raster.EventPointerMotion, X: 5, Y: 5})
	visible.ResetWrites()
	before := frames
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if frames == before {
		t.Fatal("engine frame not pulled for a delivered batch")
	}
	if visible.Writes() != 0 {
		t.Errorf("visible writes = %d after identical frame, want 0", visible.Writes())
	}
}

func TestResizeForcesRedraw(t *testing.T) {
	eng := engine.NewFake()
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(raster.Event{Type: raster.EventResize, Width: 100, Height: 80})
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() == 0 {
		t.Error("resize did not force a repaint")
	}
}

func TestFastPathDrawsOneGlyph(t *testing.T) {
	eng := engine.NewFake()
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	eng.CaretFocused = true
	eng.CaretPos = image.Pt(10, 20)
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(charDown('a'))
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// Only the glyph's box reached the visible surface; a full walk would
	// have blitted the entire frame.
	tbl := glyphs.NewTable()
	want := tbl.Width("a") * tbl.Height()
	if visible.Writes() != want {
		t.Errorf("visible writes = %d, want one glyph box %d", visible.Writes(), want)
	}
}

func TestFastPathNeedsFocusedCaret(t *testing.T) {
	eng := engine.NewFake()
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
		buf.PushText(image.Pt(2, 12), strconv.Itoa(len(eng.Calls)), command.ColorWhite)
	}
	eng.CaretFocused = false
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(charDown('a'))
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() != 64*64 {
		t.Errorf("visible writes = %d, want a full-frame blit %d", visible.Writes(), 64*64)
	}
}

func TestFastPathNotFollowedByForcedRedraw(t *testing.T) {
	eng := engine.NewFake()
	eng.BuildFrame = func(buf *command.Buffer) {
		buf.PushRectFilled(image.Rect(0, 0, 64, 64), command.ColorBlack, 0)
	}
	eng.CaretFocused = true
	eng.CaretPos = image.Pt(10, 20)
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(charDown('a'))
	if err := l.Step(); err != nil {
		t.Fatalf("fast step: %v", err)
	}

	// The appended glyph committed its frame snapshot, so the next step must
	// not repaint anything the fast path already drew.
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if visible.Writes() != 0 {
		t.Errorf("visible writes = %d after fast append, want 0", visible.Writes())
	}
}

func TestFastPathGlyphAtPreInsertCaret(t *testing.T) {
	eng := engine.NewFake()
	eng.CaretFocused = true
	eng.CaretPos = image.Pt(10, 20)
	l, host, visible := newTestLoop(t, eng)
	drainStartupFrames(t, l)

	host.PostEvent(charDown('a'))
	visible.ResetWrites()
	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	// The glyph lands in the slot the caret named before the insertion, not
	// one advance to the right of it.
	if got := visible.LevelAt(12, 15); got != raster.Black {
		t.Errorf("pre-insert caret slot level = %v, want Black", got)
	}
	if got := visible.LevelAt(19, 15); got != raster.White {
		t.Errorf("post-insert caret slot level = %v, want White", got)
	}
	tbl := glyphs.NewTable()
	if want := tbl.Width("a") * tbl.Height(); visible.Writes() != want {
		t.Errorf("visible writes = %d, want one glyph box %d", visible.Writes(), want)
	}
}

func TestInitErrorWraps(t *testing.T) {
	base := raster.ErrBadSize
	ie := &InitError{Component: "offscreen surface", Err: base}
	if !errors.Is(ie, base) {
		t.Error("InitError does not unwrap to its cause")
	}
	if ie.Error() == "" {
		t.Error("InitError message empty")
	}
}
