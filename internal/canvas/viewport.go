package canvas

import (
	"math"

	"github.com/olivier-w/epicycles/internal/curve"
)

// Viewport maps world coordinates onto canvas dots. Braille dots are close to
// square, so one scale serves both axes; world y points up.
type Viewport struct {
	Center     curve.Point
	HalfHeight float64
}

// DefaultViewport shows x in roughly [-10, 10] and y in [-8, 8].
func DefaultViewport() Viewport {
	return Viewport{HalfHeight: 8}
}

// Fit centres the viewport on pts with a margin of 10% on each side.
func Fit(pts []curve.Point) Viewport {
	if len(pts) == 0 {
		return DefaultViewport()
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	half := math.Max(maxX-minX, maxY-minY) / 2 * 1.2
	if half == 0 || math.IsNaN(half) || math.IsInf(half, 0) {
		half = DefaultViewport().HalfHeight
	}
	return Viewport{
		Center:     curve.Pt((minX+maxX)/2, (minY+maxY)/2),
		HalfHeight: half,
	}
}

// Zoom scales the visible extent by f; f < 1 zooms in.
func (v *Viewport) Zoom(f float64) {
	if f > 0 {
		v.HalfHeight *= f
	}
}

// Pan moves the centre by (dx, dy) world units.
func (v *Viewport) Pan(dx, dy float64) {
	v.Center.X += dx
	v.Center.Y += dy
}

func (v Viewport) scale(h int) float64 {
	if v.HalfHeight <= 0 {
		return 1
	}
	return float64(h) / (2 * v.HalfHeight)
}

// ToDots converts a world point to dot coordinates on a w×h dot grid.
func (v Viewport) ToDots(p curve.Point, w, h int) (x, y float64) {
	s := v.scale(h)
	x = float64(w)/2 + (p.X-v.Center.X)*s
	y = float64(h)/2 - (p.Y-v.Center.Y)*s
	return x, y
}

// FromDots is the inverse of ToDots.
func (v Viewport) FromDots(x, y float64, w, h int) curve.Point {
	s := v.scale(h)
	return curve.Pt(
		v.Center.X+(x-float64(w)/2)/s,
		v.Center.Y-(y-float64(h)/2)/s,
	)
}

// CellToWorld returns the world point under the centre of cell (col, row) of
// a cols×rows canvas. Used to turn mouse positions into curve points.
func (v Viewport) CellToWorld(col, row, cols, rows int) curve.Point {
	return v.FromDots(float64(col*2)+1, float64(row*4)+2, cols*2, rows*4)
}

// WorldPerDot is the world distance between neighbouring dots.
func (v Viewport) WorldPerDot(h int) float64 {
	return 1 / v.scale(h)
}
