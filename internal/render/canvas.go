package render

import "strings"

const brailleBase = 0x2800

// Dot bits of a braille cell, indexed [row][col]. Each terminal cell holds a
// 2x4 grid of dots.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// canvas is a braille raster; its pixel size is (cols*2) x (rows*4).
type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{}
	c.resize(cols, rows)
	return c
}

func (c *canvas) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	c.cells = make([][]rune, rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.reset()
}

func (c *canvas) pixelSize() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *canvas) reset() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBase
		}
	}
}

func (c *canvas) plot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// line rasterises a segment with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
