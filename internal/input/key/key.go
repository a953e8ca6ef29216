// Package key defines the semantic keyboard vocabulary the engine consumes:
// abstract keys independent of raw host key codes, and the tables that map
// raw codes and clipboard chords onto them.
package key

// Key is a semantic keyboard action.
type Key int

const (
	None Key = iota
	Rune

	Left
	Right
	Up
	Down
	Enter
	Tab
	Backspace
	Delete
	Escape
	PageUp
	PageDown
	Home
	End
	Shift

	Copy
	Paste
	Cut
	Undo
	Redo
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case None:
		return "none"
	case Rune:
		return "rune"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Enter:
		return "enter"
	case Tab:
		return "tab"
	case Backspace:
		return "backspace"
	case Delete:
		return "delete"
	case Escape:
		return "escape"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	case Home:
		return "home"
	case End:
		return "end"
	case Shift:
		return "shift"
	case Copy:
		return "copy"
	case Paste:
		return "paste"
	case Cut:
		return "cut"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	default:
		return "unknown"
	}
}

// IsClipboard reports whether the key is one of the clipboard-semantic
// actions reachable through a command chord.
func (k Key) IsClipboard() bool {
	switch k {
	case Copy, Paste, Cut, Undo, Redo:
		return true
	}
	return false
}
