package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.PixelSize(); w != 8 || h != 8 {
		t.Fatalf("PixelSize = %dx%d, want 8x8", w, h)
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != blank|0x1|0x80 {
		t.Errorf("cell = %U, want %U", c.Grid[0][0], blank|0x1|0x80)
	}
	if !c.IsSet(1, 3) {
		t.Error("IsSet(1, 3) = false after Set")
	}

	c.Unset(0, 0)
	if c.IsSet(0, 0) {
		t.Error("IsSet(0, 0) = true after Unset")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Unset(-1, -1)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 0, 19, 0)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 0) {
			t.Fatalf("dot %d not set on horizontal line", x)
		}
	}

	c.Clear()
	c.DrawLine(3, 0, 3, 11)
	for y := 0; y < 12; y++ {
		if !c.IsSet(3, y) {
			t.Fatalf("dot %d not set on vertical line", y)
		}
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)
	for _, p := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("circle missing %v", p)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("outline set its centre")
	}

	c.FillCircle(10, 10, 2)
	if !c.IsSet(10, 10) {
		t.Error("FillCircle left centre empty")
	}
}

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Set(0, 0)
	c.Label(2, 4, "abcdefgh")

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := []rune(lines[1]); string(got[1:]) != "abcde" {
		t.Errorf("label row = %q", lines[1])
	}
	if []rune(lines[0])[0] == blank {
		t.Error("dot lost from first row")
	}

	c.Clear()
	if strings.ContainsAny(c.String(), "abc") {
		t.Error("Clear kept labels")
	}
}

func TestViewport(t *testing.T) {
	c := NewCanvas(10, 5) // 20x20 dots
	vp := newViewport(c, 0, 10, 0, 10, 0)

	tests := []struct {
		x, y   float64
		px, py int
	}{
		{0, 0, 0, 19},
		{10, 10, 19, 0},
		{5, 5, 10, 10},
	}
	for _, tt := range tests {
		px, py := vp.point(tt.x, tt.y)
		if px != tt.px || py != tt.py {
			t.Errorf("point(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}

	// degenerate ranges are widened
	flat := newViewport(c, 3, 3, 2, 2, 0)
	if px, py := flat.point(3, 2); px != 10 || py != 10 {
		t.Errorf("flat centre = (%d, %d), want (10, 10)", px, py)
	}
}
