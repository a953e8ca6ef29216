package app

import (
	"errors"
	"image"
	"io"

	"github.com/hferr/stencil/internal/clipboard"
	"github.com/hferr/stencil/internal/command"
	"github.com/hferr/stencil/internal/curve"
	"github.com/hferr/stencil/internal/engine"
	"github.com/hferr/stencil/internal/glyphs"
	"github.com/hferr/stencil/internal/input"
	"github.com/hferr/stencil/internal/input/key"
	"github.com/hferr/stencil/internal/raster"
	"github.com/hferr/stencil/internal/render"
)

// ErrBadOptions is returned for invalid loop options.
var ErrBadOptions = errors.New("app: invalid options")

// Options configures the backend loop.
type Options struct {
	// Width and Height are the target surface dimensions in pixels.
	Width  int
	Height int

	// ArenaSize is the byte capacity of the frame-diff arena. Zero uses
	// command.DefaultArenaSize.
	ArenaSize int

	// CurveSegments is the Bezier subdivision count. Zero uses
	// curve.DefaultSegments.
	CurveSegments int

	// ForceRedrawFrames is how many loop iterations input activity keeps
	// the frame pipeline running without waiting for more events. A widget
	// can lag one frame behind the state change that reveals or hides it
	// (a hover highlight clearing, for example), so a single pass is not
	// enough to guarantee its final state reaches the screen. The same
	// count is used for draws forced past the differ after a resize.
	ForceRedrawFrames int

	// CtrlIsCommand treats Ctrl as the command modifier for clipboard
	// chords, for hosts without a distinct command key.
	CtrlIsCommand bool

	// LogLevel and LogOutput configure logging. Nil output disables it.
	LogLevel  string
	LogOutput io.Writer
}

// DefaultForceRedrawFrames covers the one-frame lag of hover-style widgets.
const DefaultForceRedrawFrames = 2

// Loop owns the per-frame pipeline: drain host events, deliver one input
// batch, pull the engine's command buffer, gate on the frame differ, render
// offscreen, blit the dirty rectangle. Single-threaded and not reentrant:
// nothing here may be called from inside an engine callback.
type Loop struct {
	opts Options
	log  *Logger

	eng     engine.Engine
	host    raster.Host
	visible raster.Surface

	metrics    *glyphs.Table
	translator *input.Translator
	differ     *render.Differ
	renderer   *render.Renderer
	comp       *render.Compositor
	bridge     *clipboard.Bridge

	arena []byte

	// pumpFrames keeps the pipeline pulling frames after input without
	// blocking, so a widget that reveals or hides itself one frame behind
	// the input that caused it still reaches the screen. The draw itself
	// stays gated by the differ.
	pumpFrames int

	// forceFrames draws past an unchanged diff. Armed only when the
	// visible surface itself is suspect (resize).
	forceFrames int
}

// New wires a loop for the given engine, host, visible surface and host
// clipboard. Allocation failures here (offscreen surface, diff arena) are
// fatal: the caller should halt startup.
func New(eng engine.Engine, host raster.Host, visible raster.Surface, clip clipboard.Clipboard, opts Options) (*Loop, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrBadOptions
	}
	if opts.ArenaSize <= 0 {
		opts.ArenaSize = command.DefaultArenaSize
	}
	if opts.ForceRedrawFrames <= 0 {
		opts.ForceRedrawFrames = DefaultForceRedrawFrames
	}

	logger := NewLogger(ParseLogLevel(opts.LogLevel), opts.LogOutput, "stencil")
	if opts.LogOutput == nil {
		logger.Disable()
	}

	metrics := glyphs.NewTable()
	eng.SetWidthFunc(metrics.Width)

	comp, err := render.NewCompositor(opts.Width, opts.Height)
	if err != nil {
		return nil, &InitError{Component: "offscreen surface", Err: err}
	}
	comp.Surface().SetFontMetrics(metrics.Advance, metrics.Ascent(), metrics.Height()-metrics.Ascent())

	quant := render.NewQuantizer()
	tess := curve.New(opts.CurveSegments)

	l := &Loop{
		opts:       opts,
		log:        logger,
		eng:        eng,
		host:       host,
		visible:    visible,
		metrics:    metrics,
		translator: input.NewTranslator(eng, key.NewMap()),
		differ:     render.NewDiffer(opts.ArenaSize),
		renderer:   render.NewRenderer(quant, tess, metrics),
		comp:       comp,
		bridge:     clipboard.NewBridge(clip, eng),
		arena:      make([]byte, opts.ArenaSize),

		// Pump the first frames so the initial screen is pulled and drawn
		// before any input arrives.
		pumpFrames: opts.ForceRedrawFrames,
	}
	l.translator.TreatCtrlAsCommand(opts.CtrlIsCommand)
	l.log.Info("backend ready %dx%d arena=%d", opts.Width, opts.Height, opts.ArenaSize)
	return l, nil
}

// Metrics returns the glyph table, for hosts that need the same advances the
// renderer uses.
func (l *Loop) Metrics() *glyphs.Table {
	return l.metrics
}

// Run executes Step until the host requests quit or a step fails.
func (l *Loop) Run() error {
	for {
		if err := l.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				l.log.Info("quit")
				return nil
			}
			return err
		}
	}
}

// Step runs one loop iteration. With nothing pending it blocks on the host
// until something happens; every call after that runs to completion without
// suspending.
func (l *Loop) Step() error {
	if l.pumpFrames == 0 && l.forceFrames == 0 && !l.host.HasEvent() {
		if err := l.consume(l.host.PollEvent()); err != nil {
			return err
		}
	}
	for l.host.HasEvent() {
		if err := l.consume(l.host.PollEvent()); err != nil {
			return err
		}
	}

	// Sampled before the batch lands so it still points at the slot the
	// appended character fills.
	caret, focused := l.eng.Caret()

	batch := l.translator.Flush()
	if batch.Delivered {
		l.pumpFrames = l.opts.ForceRedrawFrames
	}
	if !batch.Delivered && l.pumpFrames == 0 && l.forceFrames == 0 {
		return nil
	}

	if batch.FastOK && focused {
		l.stepFast(caret, batch.FastRune)
		l.decay()
		return nil
	}

	buf := l.eng.Frame()
	n := buf.EncodeTo(l.arena)
	if l.differ.Changed(l.arena, n) || l.forceFrames > 0 {
		l.comp.Begin()
		l.renderer.Walk(l.comp.Surface(), buf, l.comp.Region())
		rect := l.comp.Flush(l.visible)
		l.differ.Commit(l.arena, n)
		l.log.Debug("frame rendered dirty=%v bytes=%d", rect, n)
	}
	l.decay()
	return nil
}

// stepFast draws a single appended glyph at the caret instead of walking the
// whole command stream, then commits the frame snapshot so the next diff has
// the correct baseline.
func (l *Loop) stepFast(pos image.Point, ch rune) {
	l.comp.Begin()
	l.renderer.AppendRune(l.comp.Surface(), l.comp.Region(), pos, ch, command.ColorBlack)
	l.comp.Flush(l.visible)

	buf := l.eng.Frame()
	n := buf.EncodeTo(l.arena)
	l.differ.Commit(l.arena, n)
	l.log.Debug("fast append %q at (%d,%d)", ch, pos.X, pos.Y)
}

func (l *Loop) decay() {
	if l.pumpFrames > 0 {
		l.pumpFrames--
	}
	if l.forceFrames > 0 {
		l.forceFrames--
	}
}

// consume routes one host event: lifecycle events are handled here, input
// events go to the translator.
func (l *Loop) consume(ev raster.Event) error {
	switch ev.Type {
	case raster.EventQuit:
		return ErrQuit
	case raster.EventResize:
		// The target surface is fixed at init; the legacy host never
		// resizes. Terminal hosts can, and get a repaint of the same
		// surface instead of a reshape.
		l.log.Warn("resize to %dx%d ignored", ev.Width, ev.Height)
		l.forceFrames = l.opts.ForceRedrawFrames
		return nil
	default:
		l.translator.Push(ev)
		return nil
	}
}
