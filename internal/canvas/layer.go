package canvas

import "github.com/olivier-w/epicycles/internal/curve"

// Layer is one drawable: a set of polylines in world space and how to colour
// them. Layers are drawn in registration order.
type Layer struct {
	Name  string
	Color RGB
	// Palette, when set, colours polyline i of n instead of Color.
	Palette func(i, n int) RGB
	// Fade, when set, blends each polyline from Fade at its start to its
	// colour at its end.
	Fade *RGB
	// Source returns the polylines to draw this frame.
	Source func() [][]curve.Point
	// Hidden layers are skipped.
	Hidden bool
}

// Scene is an ordered registry of layers.
type Scene struct {
	layers []*Layer
}

// Register appends l and returns it so callers can toggle it later.
func (s *Scene) Register(l Layer) *Layer {
	lp := &l
	s.layers = append(s.layers, lp)
	return lp
}

// Layer finds a registered layer by name.
func (s *Scene) Layer(name string) *Layer {
	for _, l := range s.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the registered layers in draw order.
func (s *Scene) Layers() []*Layer {
	return append([]*Layer(nil), s.layers...)
}

// Draw rasterises every visible layer onto c through v.
func (s *Scene) Draw(c *Canvas, v Viewport) {
	w, h := c.Dots()
	for _, l := range s.layers {
		if l.Hidden || l.Source == nil {
			continue
		}
		lines := l.Source()
		for i, line := range lines {
			col := l.Color
			if l.Palette != nil {
				col = l.Palette(i, len(lines))
			}
			drawPolyline(c, v, line, w, h, col, l.Fade)
		}
	}
}

func drawPolyline(c *Canvas, v Viewport, line []curve.Point, w, h int, col RGB, fade *RGB) {
	if len(line) == 0 {
		return
	}
	px, py := v.ToDots(line[0], w, h)
	if len(line) == 1 {
		c.Line(px, py, px, py, col)
		return
	}
	for i := 1; i < len(line); i++ {
		x, y := v.ToDots(line[i], w, h)
		segCol := col
		if fade != nil {
			segCol = Lerp(*fade, col, float64(i)/float64(len(line)-1))
		}
		c.Line(px, py, x, y, segCol)
		px, py = x, y
	}
}

// Rainbow returns a Palette that spreads n polylines over the hue range
// [from, from+span), keyed by polyline index.
func Rainbow(from, span float64) func(i, n int) RGB {
	return func(i, n int) RGB {
		return HSV(from+span*float64(i)/float64(max(n, 1)), 0.75, 1)
	}
}

// Polylines wraps a single point list as a Layer source result.
func Polylines(pts []curve.Point) [][]curve.Point {
	if len(pts) == 0 {
		return nil
	}
	return [][]curve.Point{pts}
}
