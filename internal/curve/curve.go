package curve

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// MinSamples is the smallest number of samples taken from a sparse sketch or a
// parametric function.
const MinSamples = 64

// ErrUnknownPreset is returned by Preset for names not in the registry.
var ErrUnknownPreset = errors.New("unknown preset")

// Point is a 2-D point handed to renderers.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Complex returns p as x + iy.
func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// PointOf converts x + iy to a Point.
func PointOf(z complex128) Point {
	return Point{X: real(z), Y: imag(z)}
}

// Curve is a closed path sampled at uniformly spaced parameter values over one
// period, in time order.
type Curve []complex128

// FromPoints interprets each point as x + iy. No resampling happens; the
// returned curve has exactly len(pts) samples.
func FromPoints(pts []Point) Curve {
	c := make(Curve, len(pts))
	for i, p := range pts {
		c[i] = p.Complex()
	}
	return c
}

// Points returns a copy of c as renderer points.
func (c Curve) Points() []Point {
	pts := make([]Point, len(c))
	for i, z := range c {
		pts[i] = PointOf(z)
	}
	return pts
}

// Mean returns the arithmetic mean of the samples.
func (c Curve) Mean() complex128 {
	if len(c) == 0 {
		return 0
	}
	var sum complex128
	for _, z := range c {
		sum += z
	}
	return sum / complex(float64(len(c)), 0)
}

// Close bridges the jump from the last sample back to the first with points
// spaced roughly spacing apart, so a sketch that was not drawn shut does not
// ring after the transform. Curves that already close within spacing are
// returned unchanged.
func Close(c Curve, spacing float64) Curve {
	if len(c) < 2 || spacing <= 0 {
		return c
	}
	first, last := c[0], c[len(c)-1]
	gap := cmplx.Abs(first - last)
	n := int(math.Round(gap / spacing))
	if n < 2 {
		return c
	}
	out := make(Curve, len(c), len(c)+n-1)
	copy(out, c)
	step := (first - last) / complex(float64(n), 0)
	for i := 1; i < n; i++ {
		out = append(out, last+step*complex(float64(i), 0))
	}
	return out
}

// Resample returns n points spaced evenly by arc length along the closed
// polyline through c. The first sample is kept in place.
func Resample(c Curve, n int) Curve {
	if n <= 0 || len(c) == 0 {
		return Curve{}
	}
	if len(c) == 1 {
		out := make(Curve, n)
		for i := range out {
			out[i] = c[0]
		}
		return out
	}

	// cumulative length at each vertex, closing edge included
	cum := make([]float64, len(c)+1)
	for i := range c {
		next := c[(i+1)%len(c)]
		cum[i+1] = cum[i] + cmplx.Abs(next-c[i])
	}
	total := cum[len(c)]
	if total == 0 {
		out := make(Curve, n)
		for i := range out {
			out[i] = c[0]
		}
		return out
	}

	out := make(Curve, n)
	seg := 0
	for i := range n {
		d := total * float64(i) / float64(n)
		for seg < len(c)-1 && cum[seg+1] <= d {
			seg++
		}
		a, b := c[seg], c[(seg+1)%len(c)]
		l := cum[seg+1] - cum[seg]
		if l == 0 {
			out[i] = a
			continue
		}
		t := (d - cum[seg]) / l
		out[i] = a + (b-a)*complex(t, 0)
	}
	return out
}

// Sketch turns mouse-authored points into a curve ready for the transform:
// the gap back to the start is bridged and the result is resampled to at
// least MinSamples points.
func Sketch(pts []Point) Curve {
	c := FromPoints(pts)
	if len(c) == 0 {
		return c
	}
	c = Close(c, averageSpacing(c))
	return Resample(c, max(len(c), MinSamples))
}

func averageSpacing(c Curve) float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(c); i++ {
		sum += cmplx.Abs(c[i] - c[i-1])
	}
	return sum / float64(len(c)-1)
}
