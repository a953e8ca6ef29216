package render

import "bytes"

// Differ detects frame-to-frame change by byte-comparing the encoded command
// arena against a private snapshot of the previously rendered frame.
//
// This is a whole-arena compare on purpose: it costs O(arena size) no matter
// how small the real change is, but it is trivially correct — any command
// change alters bytes, so it can over-report a change and never miss one —
// and most frames are visually static, so the common case is one memcmp that
// says "skip".
type Differ struct {
	snap []byte
	n    int
}

// NewDiffer creates a differ whose snapshot has the given arena capacity.
// The snapshot is allocated once and never reallocated.
func NewDiffer(arenaSize int) *Differ {
	return &Differ{snap: make([]byte, arenaSize)}
}

// ArenaSize returns the snapshot capacity.
func (d *Differ) ArenaSize() int {
	return len(d.snap)
}

// Changed reports whether the first n bytes of arena differ from the
// snapshot of the last committed frame. Differing lengths always count as
// changed.
func (d *Differ) Changed(arena []byte, n int) bool {
	if n != d.n {
		return true
	}
	return !bytes.Equal(arena[:n], d.snap[:n])
}

// Commit copies the current arena into the snapshot. Called only after a
// completed render so a failed or skipped frame never poisons the baseline.
func (d *Differ) Commit(arena []byte, n int) {
	copy(d.snap[:n], arena[:n])
	d.n = n
}
