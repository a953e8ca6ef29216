package raster

import (
	"errors"
	"image"
	"testing"
)

func TestNewMemoryBadSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -1, 10},
		{"negative height", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMemory(tt.w, tt.h); !errors.Is(err, ErrBadSize) {
				t.Errorf("NewMemory(%d, %d) error = %v, want ErrBadSize", tt.w, tt.h, err)
			}
		})
	}
}

func TestMemoryStartsWhite(t *testing.T) {
	m, err := NewMemory(8, 8)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if m.LevelAt(x, y) != White {
				t.Fatalf("pixel (%d, %d) = %v, want White", x, y, m.LevelAt(x, y))
			}
		}
	}
	if m.Writes() != 0 {
		t.Errorf("Writes() = %d after construction, want 0", m.Writes())
	}
}

func TestFillRectRespectsClip(t *testing.T) {
	m, _ := NewMemory(20, 20)
	m.SetClip(image.Rect(5, 5, 10, 10))
	m.SetLevel(Black)
	m.FillRect(image.Rect(0, 0, 20, 20), 0)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			inside := x >= 5 && x < 10 && y >= 5 && y < 10
			got := m.LevelAt(x, y)
			if inside && got != Black {
				t.Fatalf("pixel (%d, %d) inside clip = %v, want Black", x, y, got)
			}
			if !inside && got != White {
				t.Fatalf("pixel (%d, %d) outside clip = %v, want White", x, y, got)
			}
		}
	}
	if m.Writes() != 25 {
		t.Errorf("Writes() = %d, want 25 (clip area only)", m.Writes())
	}
}

func TestSetClipClampedToBounds(t *testing.T) {
	m, _ := NewMemory(10, 10)
	m.SetClip(image.Rect(-5, -5, 50, 50))
	if got, want := m.Clip(), image.Rect(0, 0, 10, 10); got != want {
		t.Errorf("Clip() = %v, want %v", got, want)
	}
}

func TestWritesCounter(t *testing.T) {
	m, _ := NewMemory(10, 10)
	m.SetLevel(Black)
	m.FillRect(image.Rect(0, 0, 4, 4), 0)
	if m.Writes() != 16 {
		t.Errorf("Writes() = %d after 4x4 fill, want 16", m.Writes())
	}
	m.ResetWrites()
	if m.Writes() != 0 {
		t.Errorf("Writes() = %d after reset, want 0", m.Writes())
	}
	m.FillRect(image.Rect(0, 0, 20, 20), 0)
	if m.Writes() != 100 {
		t.Errorf("Writes() = %d after full-surface fill, want 100", m.Writes())
	}
}

func TestLineEndpoints(t *testing.T) {
	m, _ := NewMemory(16, 16)
	m.SetLevel(Black)
	m.Polyline([]image.Point{{1, 1}, {12, 9}})
	if m.LevelAt(1, 1) != Black {
		t.Error("line start pixel not set")
	}
	if m.LevelAt(12, 9) != Black {
		t.Error("line end pixel not set")
	}
}

func TestPolylineSkipsDegenerateSegments(t *testing.T) {
	m, _ := NewMemory(8, 8)
	m.SetLevel(Black)
	m.Polyline([]image.Point{{2, 2}, {2, 2}, {2, 2}})
	if m.Writes() != 0 {
		t.Errorf("Writes() = %d for fully degenerate polyline, want 0", m.Writes())
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	m, _ := NewMemory(16, 16)
	m.SetLevel(Black)
	m.FillPolygon([]image.Point{{2, 2}, {12, 2}, {2, 12}})
	if m.LevelAt(3, 3) != Black {
		t.Error("interior pixel not filled")
	}
	if m.LevelAt(12, 12) != White {
		t.Error("pixel outside the triangle was filled")
	}
}

func TestFillOvalStaysInsideRect(t *testing.T) {
	m, _ := NewMemory(20, 20)
	m.SetLevel(Black)
	r := image.Rect(4, 4, 16, 16)
	m.FillOval(r)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if m.LevelAt(x, y) == Black && !image.Pt(x, y).In(r) {
				t.Fatalf("oval pixel (%d, %d) falls outside %v", x, y, r)
			}
		}
	}
	cx, cy := 9, 9
	if m.LevelAt(cx, cy) != Black {
		t.Error("oval center not filled")
	}
}

func TestSetLevelRejectsOutOfRange(t *testing.T) {
	m, _ := NewMemory(4, 4)
	m.SetLevel(Level(99))
	m.FillRect(image.Rect(0, 0, 1, 1), 0)
	if m.LevelAt(0, 0) != Black {
		t.Errorf("out-of-range level drew %v, want Black fallback", m.LevelAt(0, 0))
	}
}

func TestTextRunUsesAdvances(t *testing.T) {
	m, _ := NewMemory(64, 20)
	m.SetFontMetrics(func(byte) int { return 6 }, 10, 3)
	m.SetLevel(Black)
	m.TextRun(2, 14, "ab")
	// Boxes sit inside [x+1, x+adv-1) per character.
	if m.LevelAt(3, 10) != Black {
		t.Error("first character footprint missing")
	}
	if m.LevelAt(9, 10) != Black {
		t.Error("second character footprint missing")
	}
	if m.LevelAt(20, 10) != White {
		t.Error("pixels past the run were drawn")
	}
}

func TestTextRunSpaceAdvancesWithoutDrawing(t *testing.T) {
	m, _ := NewMemory(64, 20)
	m.SetFontMetrics(func(byte) int { return 6 }, 10, 3)
	m.SetLevel(Black)
	m.TextRun(2, 14, " ")
	if m.Writes() != 0 {
		t.Errorf("Writes() = %d for a lone space, want 0", m.Writes())
	}
}

func TestBlitCopiesOnlyRect(t *testing.T) {
	src, _ := NewMemory(10, 10)
	src.SetLevel(Black)
	src.FillRect(image.Rect(0, 0, 10, 10), 0)

	dst, _ := NewMemory(10, 10)
	dst.Blit(src, image.Rect(2, 2, 5, 5))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			got := dst.LevelAt(x, y)
			if inside && got != Black {
				t.Fatalf("pixel (%d, %d) inside blit rect = %v, want Black", x, y, got)
			}
			if !inside && got != White {
				t.Fatalf("pixel (%d, %d) outside blit rect = %v, want White", x, y, got)
			}
		}
	}
	if dst.Writes() != 9 {
		t.Errorf("Writes() = %d after 3x3 blit, want 9", dst.Writes())
	}
}

func TestBlitEmptyRectWritesNothing(t *testing.T) {
	src, _ := NewMemory(10, 10)
	dst, _ := NewMemory(10, 10)
	dst.Blit(src, image.Rectangle{})
	if dst.Writes() != 0 {
		t.Errorf("Writes() = %d for empty blit, want 0", dst.Writes())
	}
}

func TestBlitSizeMismatchPanics(t *testing.T) {
	src, _ := NewMemory(8, 8)
	dst, _ := NewMemory(10, 10)
	defer func() {
		if recover() == nil {
			t.Fatal("Blit with mismatched dimensions did not panic")
		}
	}()
	dst.Blit(src, image.Rect(0, 0, 8, 8))
}
