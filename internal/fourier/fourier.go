// Package fourier computes the normalised discrete Fourier series of a sampled
// closed curve and orders it for epicycle drawing.
package fourier

import (
	"math"
	"math/cmplx"

	"github.com/olivier-w/epicycles/internal/curve"
)

// Coefficient is one rotating vector: its amplitude at t=0 and its signed
// integer frequency in cycles per period.
type Coefficient struct {
	Amplitude complex128
	Frequency int
}

// Radius is the length of the rotating vector.
func (c Coefficient) Radius() float64 {
	return cmplx.Abs(c.Amplitude)
}

// At returns the vector a·exp(−2πi·t·f).
func (c Coefficient) At(t float64) complex128 {
	return c.Amplitude * cmplx.Exp(complex(0, -2*math.Pi*t*float64(c.Frequency)))
}

// Freq labels DFT bin k of an n-point transform with the standard signed
// layout: 0, 1, …, ⌈n/2⌉−1, −⌊n/2⌋, …, −1.
func Freq(k, n int) int {
	if k < (n+1)/2 {
		return k
	}
	return k - n
}

// Transform returns the n coefficients of c in raw bin order, amplitudes
// divided by n. A nil backend uses Gonum.
func Transform(c curve.Curve, b Backend) []Coefficient {
	n := len(c)
	if n == 0 {
		return nil
	}
	if b == nil {
		b = Gonum
	}
	spectrum := b.Forward(nil, c)
	scale := complex(1/float64(n), 0)
	out := make([]Coefficient, n)
	for k, x := range spectrum {
		out[k] = Coefficient{Amplitude: x * scale, Frequency: Freq(k, n)}
	}
	return out
}

// Synthesize sums every coefficient vector at time t.
func Synthesize(coeffs []Coefficient, t float64) complex128 {
	var z complex128
	for _, c := range coeffs {
		z += c.At(t)
	}
	return z
}
