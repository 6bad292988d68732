package curve

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Parameter is a named free variable of a parametric curve.
type Parameter struct {
	Name    string
	Default float64
}

// Func is a parsed complex-valued curve z(t). Implementations are built once
// and evaluated many times; params holds one value per Parameters entry.
type Func interface {
	Evaluate(t float64, params []float64) (complex128, error)
	Parameters() []Parameter
}

// EvaluationError reports a curve function that failed at parameter T.
type EvaluationError struct {
	T   float64
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating curve at t=%g: %v", e.T, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

var errNotFinite = errors.New("result is not finite")

// Parametric builds a Func from real-valued x(t) and y(t). A nil Y keeps the
// curve on the real axis.
type Parametric struct {
	Name   string
	X      func(t float64, p []float64) float64
	Y      func(t float64, p []float64) float64
	Params []Parameter
}

func (f Parametric) Evaluate(t float64, params []float64) (complex128, error) {
	if f.X == nil {
		return 0, errors.New("missing x(t)")
	}
	x := f.X(t, params)
	var y float64
	if f.Y != nil {
		y = f.Y(t, params)
	}
	return complex(x, y), nil
}

func (f Parametric) Parameters() []Parameter {
	return append([]Parameter(nil), f.Params...)
}

// Defaults returns the default value of every parameter of f.
func Defaults(f Func) []float64 {
	ps := f.Parameters()
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Default
	}
	return out
}

// Sample evaluates f at n points of t linearly spaced over [-π, π] inclusive.
// n is raised to MinSamples when smaller. Missing trailing params take their
// defaults.
func Sample(f Func, n int, params []float64) (Curve, error) {
	if n < MinSamples {
		n = MinSamples
	}
	p := Defaults(f)
	copy(p, params)

	c := make(Curve, n)
	for i := range n {
		t := linspace(-math.Pi, math.Pi, n, i)
		z, err := f.Evaluate(t, p)
		if err != nil {
			return nil, &EvaluationError{T: t, Err: err}
		}
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return nil, &EvaluationError{T: t, Err: errNotFinite}
		}
		c[i] = z
	}
	return c, nil
}

func linspace(lo, hi float64, n, i int) float64 {
	if n == 1 {
		return lo
	}
	if i == n-1 {
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}
