package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a character grid addressed in braille sub-pixels. Each cell
// holds 2x4 dots, so the drawable area is (Width*2) x (Height*4). Text
// labels sit on a separate overlay and win over dots in String.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		overlay: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.overlay[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// PixelSize returns the drawable area in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set sets the dot at sub-pixel (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.overlay[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawThickLine draws a line two dots wide.
func (c *Canvas) DrawThickLine(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y1)
	if absInt(x1-x0) > absInt(y1-y0) {
		c.DrawLine(x0, y0+1, x1, y1+1)
	} else {
		c.DrawLine(x0+1, y0, x1+1, y1)
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle draws a solid disc.
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Label writes text on the overlay starting at the cell containing
// sub-pixel (x, y). Text running past the right edge is cut.
func (c *Canvas) Label(x, y int, text string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		c.overlay[row][col] = r
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if o := c.overlay[i][j]; o != 0 {
				r = o
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// viewport maps a world rectangle onto a canvas with a sub-pixel margin.
type viewport struct {
	minX, maxX, minY, maxY float64
	pw, ph, margin         int
}

func newViewport(c *Canvas, minX, maxX, minY, maxY float64, margin int) viewport {
	if maxX-minX < 1e-12 {
		minX, maxX = minX-1, maxX+1
	}
	if maxY-minY < 1e-12 {
		minY, maxY = minY-1, maxY+1
	}
	pw, ph := c.PixelSize()
	return viewport{minX, maxX, minY, maxY, pw, ph, margin}
}

// point maps world (x, y) to sub-pixels; y grows upward in world space.
func (v viewport) point(x, y float64) (int, int) {
	w := float64(v.pw - 1 - 2*v.margin)
	h := float64(v.ph - 1 - 2*v.margin)
	px := v.margin + int((x-v.minX)/(v.maxX-v.minX)*w+0.5)
	py := v.margin + int((v.maxY-y)/(v.maxY-v.minY)*h+0.5)
	return px, py
}
