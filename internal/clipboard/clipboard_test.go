package clipboard

import (
	"strings"
	"testing"

	"github.com/hferr/stencil/internal/engine"
)

func TestBridgeRegistersCallbacks(t *testing.T) {
	eng := engine.NewFake()
	NewBridge(&Memory{}, eng)
	copyFn, pasteFn := eng.ClipboardFuncs()
	if copyFn == nil {
		t.Error("copy callback not registered")
	}
	if pasteFn == nil {
		t.Error("paste callback not registered")
	}
}

func TestCopyPublishesToHost(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	b := NewBridge(host, eng)
	b.Copy("selection")
	if host.Text() != "selection" {
		t.Errorf("host text = %q, want %q", host.Text(), "selection")
	}
}

func TestPasteForwardsToEngine(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	host.SetText("pasted text")
	b := NewBridge(host, eng)
	b.PasteDefault()
	if len(eng.Inserted) != 1 || eng.Inserted[0] != "pasted text" {
		t.Errorf("inserted = %v, want [%q]", eng.Inserted, "pasted text")
	}
}

func TestPasteEmptyClipboardDoesNothing(t *testing.T) {
	eng := engine.NewFake()
	b := NewBridge(&Memory{}, eng)
	b.PasteDefault()
	if len(eng.Inserted) != 0 {
		t.Errorf("inserted = %v for an empty clipboard, want none", eng.Inserted)
	}
}

func TestPasteTruncatesAtLimit(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	host.SetText(strings.Repeat("a", 100))
	b := NewBridge(host, eng)
	b.Paste(10)
	if len(eng.Inserted) != 1 || eng.Inserted[0] != strings.Repeat("a", 10) {
		t.Errorf("inserted = %v, want ten bytes", eng.Inserted)
	}
}

func TestPasteTruncatesOnRuneBoundary(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	// "héllo": the accented rune is two bytes starting at offset 1, so a
	// two-byte limit falls inside it.
	host.SetText("héllo")
	b := NewBridge(host, eng)
	b.Paste(2)
	if len(eng.Inserted) != 1 || eng.Inserted[0] != "h" {
		t.Errorf("inserted = %v, want [%q]", eng.Inserted, "h")
	}
}

func TestPasteNoLimit(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	host.SetText(strings.Repeat("b", 10000))
	b := NewBridge(host, eng)
	b.Paste(0)
	if len(eng.Inserted) != 1 || len(eng.Inserted[0]) != 10000 {
		t.Error("limit 0 must forward the whole clipboard")
	}
}

func TestDefaultLimit(t *testing.T) {
	eng := engine.NewFake()
	host := &Memory{}
	host.SetText(strings.Repeat("c", DefaultPasteLimit+50))
	b := NewBridge(host, eng)
	b.PasteDefault()
	if len(eng.Inserted) != 1 || len(eng.Inserted[0]) != DefaultPasteLimit {
		t.Errorf("inserted length = %d, want %d", len(eng.Inserted[0]), DefaultPasteLimit)
	}
}
