package key

import (
	"testing"

	"github.com/hferr/stencil/internal/raster"
)

func TestLookup(t *testing.T) {
	m := NewMap()
	tests := []struct {
		name string
		code int
		want Key
		ok   bool
	}{
		{"return", raster.CodeReturn, Enter, true},
		{"tab", raster.CodeTab, Tab, true},
		{"backspace", raster.CodeBackspace, Backspace, true},
		{"delete", raster.CodeDelete, Delete, true},
		{"escape", raster.CodeEscape, Escape, true},
		{"left", raster.CodeLeft, Left, true},
		{"right", raster.CodeRight, Right, true},
		{"up", raster.CodeUp, Up, true},
		{"down", raster.CodeDown, Down, true},
		{"home", raster.CodeHome, Home, true},
		{"end", raster.CodeEnd, End, true},
		{"page up", raster.CodePageUp, PageUp, true},
		{"page down", raster.CodePageDown, PageDown, true},
		{"shift", raster.CodeShift, Shift, true},
		{"unmapped", 0x00, None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Lookup(tt.code)
			if ok != tt.ok {
				t.Fatalf("Lookup(%#x) ok = %v, want %v", tt.code, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%#x) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestChord(t *testing.T) {
	m := NewMap()
	tests := []struct {
		name string
		r    rune
		want Key
		ok   bool
	}{
		{"copy", 'c', Copy, true},
		{"paste", 'v', Paste, true},
		{"cut", 'x', Cut, true},
		{"undo", 'z', Undo, true},
		{"redo", 'y', Redo, true},
		{"copy shifted", 'C', Copy, true},
		{"paste shifted", 'V', Paste, true},
		{"unmapped", 'q', None, false},
		{"digit", '1', None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Chord(tt.r)
			if ok != tt.ok {
				t.Fatalf("Chord(%q) ok = %v, want %v", tt.r, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Chord(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestIsClipboard(t *testing.T) {
	for _, k := range []Key{Copy, Paste, Cut, Undo, Redo} {
		if !k.IsClipboard() {
			t.Errorf("%v.IsClipboard() = false, want true", k)
		}
	}
	for _, k := range []Key{None, Rune, Enter, Backspace, Left} {
		if k.IsClipboard() {
			t.Errorf("%v.IsClipboard() = true, want false", k)
		}
	}
}
