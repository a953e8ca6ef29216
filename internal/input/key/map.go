package key

import "github.com/hferr/stencil/internal/raster"

// Map translates raw host key codes to semantic keys and command chords to
// clipboard-semantic keys. Both tables are built once and immutable after
// construction.
type Map struct {
	codes  map[int]Key
	chords map[rune]Key
}

// NewMap builds the default tables. Chords are keyed by the literal
// character typed while the command modifier is held.
func NewMap() *Map {
	return &Map{
		codes: map[int]Key{
			raster.CodeLeft:      Left,
			raster.CodeRight:     Right,
			raster.CodeUp:        Up,
			raster.CodeDown:      Down,
			raster.CodeReturn:    Enter,
			raster.CodeTab:       Tab,
			raster.CodeBackspace: Backspace,
			raster.CodeDelete:    Delete,
			raster.CodeEscape:    Escape,
			raster.CodePageUp:    PageUp,
			raster.CodePageDown:  PageDown,
			raster.CodeHome:      Home,
			raster.CodeEnd:       End,
			raster.CodeShift:     Shift,
		},
		chords: map[rune]Key{
			'c': Copy,
			'v': Paste,
			'x': Cut,
			'z': Undo,
			'y': Redo,
		},
	}
}

// Lookup returns the semantic key for a raw code.
func (m *Map) Lookup(code int) (Key, bool) {
	k, ok := m.codes[code]
	return k, ok
}

// Chord returns the clipboard-semantic key for a literal character typed
// with the command modifier held. Uppercase input matches its lowercase
// chord so Shift does not defeat the shortcut.
func (m *Map) Chord(r rune) (Key, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := m.chords[r]
	return k, ok
}
