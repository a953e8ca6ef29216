// Package glyphs measures text for the single supported screen font. The
// backend targets one bitmap font at one size; widths come from a fixed
// per-character advance table built once at init. No kerning, no subpixel
// positioning, 7-bit character codes only.
package glyphs

// Vertical metrics of the supported 9-point system font.
const (
	FontAscent  = 10
	FontDescent = 3
	FontHeight  = FontAscent + FontDescent
)

// Table maps 7-bit character codes to pixel advance widths. It is immutable
// after construction.
type Table struct {
	advance [128]int
}

// NewTable builds the advance table for the supported font.
func NewTable() *Table {
	t := &Table{}
	for i := range t.advance {
		t.advance[i] = 7
	}
	// Control codes take no space.
	for i := 0; i < 32; i++ {
		t.advance[i] = 0
	}
	t.advance[' '] = 4
	narrow := "il.,:;'!|`"
	for i := 0; i < len(narrow); i++ {
		t.advance[narrow[i]] = 3
	}
	thin := "jftrI()[]{}\"/\\*-"
	for i := 0; i < len(thin); i++ {
		t.advance[thin[i]] = 5
	}
	for c := 'A'; c <= 'Z'; c++ {
		t.advance[c] = 8
	}
	t.advance['I'] = 5
	t.advance['J'] = 6
	wide := "mwMW@"
	for i := 0; i < len(wide); i++ {
		t.advance[wide[i]] = 10
	}
	t.advance[127] = 0
	return t
}

// Advance returns the pixel advance of a single character code. Codes above
// 127 are outside the supported character set and are masked to the low
// seven bits rather than indexing out of the table.
func (t *Table) Advance(b byte) int {
	return t.advance[b&0x7f]
}

// Width returns the pixel width of a text run, the sum of per-character
// advances.
func (t *Table) Width(s string) int {
	w := 0
	for i := 0; i < len(s); i++ {
		w += t.advance[s[i]&0x7f]
	}
	return w
}

// Height returns the line height of the font.
func (t *Table) Height() int {
	return FontHeight
}

// Ascent returns the distance from baseline to the top of the tallest glyph.
func (t *Table) Ascent() int {
	return FontAscent
}
