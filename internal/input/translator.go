// Package input turns raw host events into the engine's canonical input
// calls. Everything received between one render and the next is delivered
// inside a single begin/end batch so the engine sees it as one atomic
// update.
package input

import (
	"unicode"

	"github.com/hferr/stencil/internal/engine"
	"github.com/hferr/stencil/internal/input/key"
	"github.com/hferr/stencil/internal/raster"
)

// Batch summarizes one flushed input batch.
type Batch struct {
	// Delivered reports whether any event reached the engine.
	Delivered bool

	// FastRune is the single printable character appended this batch, if
	// the batch qualifies for the trailing-append render fast path.
	FastRune rune

	// FastOK is true only when the entire batch was exactly one
	// printable literal character. Any other event — semantic keys,
	// pointer activity, paste — disables the fast path for this frame,
	// because drawing just one glyph is only valid for a pure trailing
	// append.
	FastOK bool
}

// Translator converts host pointer and keyboard events into engine input.
// It is a single-goroutine state machine; events are never stored past
// translation.
type Translator struct {
	eng    engine.Engine
	keymap *key.Map

	// ctrlIsCommand treats Ctrl as the command modifier in addition to
	// Meta, for hosts without a distinct command key.
	ctrlIsCommand bool

	batchOpen     bool
	delivered     bool
	pendingMotion bool
	motionX       int
	motionY       int

	fastRune rune
	fastSeen bool
	fastDead bool
}

// NewTranslator creates a translator delivering into eng using the given
// key tables.
func NewTranslator(eng engine.Engine, m *key.Map) *Translator {
	return &Translator{eng: eng, keymap: m}
}

// TreatCtrlAsCommand makes Ctrl count as the command modifier for clipboard
// chords. Terminal hosts enable this; the legacy host reports a real
// command key as Meta.
func (t *Translator) TreatCtrlAsCommand(on bool) {
	t.ctrlIsCommand = on
}

// Push translates one host event. Pointer motion is coalesced: only the
// final position reaches the engine unless a button edge or key event forces
// the current position out first, so a click's coordinates are always
// consistent with the engine's last-known pointer state.
func (t *Translator) Push(ev raster.Event) {
	switch ev.Type {
	case raster.EventPointerMotion:
		t.pendingMotion = true
		t.motionX, t.motionY = ev.X, ev.Y
		t.fastDead = true

	case raster.EventPointerButton:
		if ev.Button != raster.ButtonPrimary {
			return
		}
		t.open()
		t.pendingMotion = false
		t.eng.PointerMotion(ev.X, ev.Y)
		t.eng.PointerButton(ev.X, ev.Y, ev.Down)
		t.delivered = true
		t.fastDead = true

	case raster.EventKeyEdge:
		t.pushKey(ev)

	case raster.EventPaste:
		if ev.Text == "" {
			return
		}
		t.open()
		t.flushMotion()
		t.eng.InsertText(ev.Text)
		t.delivered = true
		t.fastDead = true
	}
}

// pushKey applies the keyboard priority order: clipboard chord, then keymap,
// then literal character. Auto-repeat arrives as repeated down edges and is
// delivered as repeated presses.
func (t *Translator) pushKey(ev raster.Event) {
	command := ev.Mod.Has(raster.ModMeta) || (t.ctrlIsCommand && ev.Mod.Has(raster.ModCtrl))

	if command && ev.Rune != 0 {
		if k, ok := t.keymap.Chord(ev.Rune); ok {
			t.open()
			t.flushMotion()
			t.eng.Key(k, ev.Down)
			t.delivered = true
			t.fastDead = true
			return
		}
	}

	if k, ok := t.keymap.Lookup(ev.Code); ok {
		t.open()
		t.flushMotion()
		t.eng.Key(k, ev.Down)
		t.delivered = true
		t.fastDead = true
		return
	}

	if ev.Down && ev.Rune != 0 && unicode.IsPrint(ev.Rune) {
		t.open()
		t.flushMotion()
		t.eng.Char(ev.Rune)
		t.delivered = true
		if t.fastSeen {
			t.fastDead = true
		} else {
			t.fastSeen = true
			t.fastRune = ev.Rune
		}
	}
	// Releases of literal characters carry no information for the engine.
}

// Flush closes the pending batch and returns its summary. Coalesced motion
// still pending is delivered first. After Flush the translator is ready for
// the next frame's events.
func (t *Translator) Flush() Batch {
	if t.pendingMotion {
		t.open()
		t.flushMotion()
		t.delivered = true
	}
	if t.batchOpen {
		t.eng.EndInput()
		t.batchOpen = false
	}

	b := Batch{
		Delivered: t.delivered,
		FastRune:  t.fastRune,
		FastOK:    t.fastSeen && !t.fastDead,
	}
	t.delivered = false
	t.fastSeen = false
	t.fastDead = false
	t.fastRune = 0
	return b
}

func (t *Translator) open() {
	if !t.batchOpen {
		t.eng.BeginInput()
		t.batchOpen = true
	}
}

func (t *Translator) flushMotion() {
	if t.pendingMotion {
		t.eng.PointerMotion(t.motionX, t.motionY)
		t.pendingMotion = false
	}
}
