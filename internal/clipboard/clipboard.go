// Package clipboard bridges the engine's copy/paste callbacks to the host's
// shared clipboard. Plain text only; no other formats are supported.
package clipboard

import (
	"unicode/utf8"

	"github.com/hferr/stencil/internal/engine"
)

// DefaultPasteLimit bounds how much clipboard text a paste forwards to the
// engine in one call.
const DefaultPasteLimit = 4096

// Clipboard is the host's shared clipboard.
type Clipboard interface {
	// SetText publishes plain text to the clipboard.
	SetText(s string)

	// Text retrieves the current clipboard text.
	Text() string
}

// Bridge connects an Engine to a host Clipboard. The engine invokes it
// through the callbacks registered at init.
type Bridge struct {
	host  Clipboard
	eng   engine.Engine
	limit int
}

// NewBridge creates a bridge with the default paste limit and registers its
// callbacks with the engine.
func NewBridge(host Clipboard, eng engine.Engine) *Bridge {
	b := &Bridge{host: host, eng: eng, limit: DefaultPasteLimit}
	eng.SetClipboard(b.Copy, b.PasteDefault)
	return b
}

// Copy publishes text to the host clipboard.
func (b *Bridge) Copy(s string) {
	b.host.SetText(s)
}

// Paste retrieves clipboard text, truncated to at most limit bytes on a rune
// boundary, and forwards it to the engine's text insertion.
func (b *Bridge) Paste(limit int) {
	s := b.host.Text()
	if s == "" {
		return
	}
	if limit > 0 && len(s) > limit {
		s = truncate(s, limit)
	}
	b.eng.InsertText(s)
}

// PasteDefault pastes with the bridge's configured limit.
func (b *Bridge) PasteDefault() {
	b.Paste(b.limit)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// Memory is an in-process clipboard for tests.
type Memory struct {
	text string
}

// SetText stores text.
func (m *Memory) SetText(s string) {
	m.text = s
}

// Text returns the stored text.
func (m *Memory) Text() string {
	return m.text
}
