// Package canvas rasterises world-space polylines onto a terminal grid of
// Unicode Braille cells.
package canvas

import (
	"math"
	"strings"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Canvas is a cols×rows grid of Braille cells, each a 2×4 dot matrix with
// one colour. The last colour drawn into a cell wins.
type Canvas struct {
	cols, rows int
	pattern    []uint8
	color      []RGB
	profile    Profile
}

// New returns an empty canvas. Sizes below one cell are raised to one.
func New(cols, rows int, p Profile) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{
		cols:    cols,
		rows:    rows,
		pattern: make([]uint8, cols*rows),
		color:   make([]RGB, cols*rows),
		profile: p,
	}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.cols * 2, c.rows * 4 }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	clear(c.pattern)
	clear(c.color)
}

// Set lights dot (x, y); out-of-range dots are ignored.
func (c *Canvas) Set(x, y int, col RGB) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	i := (y/4)*c.cols + x/2
	c.pattern[i] |= 1 << brailleBits[x%2][y%4]
	c.color[i] = col
}

// Lit reports whether dot (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return false
	}
	return c.pattern[(y/4)*c.cols+x/2]&(1<<brailleBits[x%2][y%4]) != 0
}

// Line draws a dot line between two points given in dot coordinates. The
// segment is clipped to the dot grid first, so endpoints far off screen still
// draw every visible dot.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col RGB) {
	if notFinite(x0, y0, x1, y1) {
		return
	}
	w, h := c.Dots()
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, float64(w), float64(h))
	if !ok {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		c.Set(int(math.Floor(x0)), int(math.Floor(y0)), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Set(int(math.Floor(x0+(x1-x0)*t)), int(math.Floor(y0+(y1-y0)*t)), col)
	}
}

// clip trims a segment to [0, w]×[0, h] (Liang-Barsky). It reports false when
// no part of the segment is inside.
func clip(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func notFinite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// String renders the canvas as rows of Braille runes joined by newlines,
// with colour escapes for the canvas profile.
func (c *Canvas) String() string {
	var out strings.Builder
	color := newANSIState(c.profile)
	for r := range c.rows {
		if r > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			i := r*c.cols + col
			if c.pattern[i] == 0 {
				out.WriteRune(' ')
				continue
			}
			color.set(&out, c.color[i])
			out.WriteRune(rune(0x2800 + int(c.pattern[i])))
		}
		color.reset(&out)
	}
	return out.String()
}
