package fourier

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/olivier-w/epicycles/internal/curve"
)

func randomCurve(r *rand.Rand, n int) curve.Curve {
	c := make(curve.Curve, n)
	for i := range c {
		c[i] = complex(r.Float64()*20-10, r.Float64()*20-10)
	}
	return c
}

func closeTo(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol*math.Max(1, cmplx.Abs(b))
}

func TestFreqLayout(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{0}},
		{2, []int{0, -1}},
		{4, []int{0, 1, -2, -1}},
		{5, []int{0, 1, 2, -2, -1}},
		{6, []int{0, 1, 2, -3, -2, -1}},
	}
	for _, tt := range tests {
		for k, want := range tt.want {
			if got := Freq(k, tt.n); got != want {
				t.Fatalf("Freq(%d, %d) = %d, want %d", k, tt.n, got, want)
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 4, 7, 8, 12, 64, 100} {
		c := randomCurve(r, n)
		want := DFT.Forward(nil, c)
		for _, b := range Backends() {
			got := b.Forward(nil, c)
			if len(got) != n {
				t.Fatalf("%s: n=%d: got %d bins", b.Name(), n, len(got))
			}
			for k := range got {
				if !closeTo(got[k], want[k], 1e-9) {
					t.Fatalf("%s: n=%d bin %d = %v, want %v", b.Name(), n, k, got[k], want[k])
				}
			}
		}
	}
}

func TestBackendDoesNotMutateInput(t *testing.T) {
	c := curve.Curve{1, 2i, -3, 4}
	orig := append(curve.Curve(nil), c...)
	for _, b := range Backends() {
		b.Forward(nil, c)
		for i := range c {
			if c[i] != orig[i] {
				t.Fatalf("%s mutated input at %d", b.Name(), i)
			}
		}
	}
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("GoDSP")
	if err != nil {
		t.Fatalf("ParseBackend() error = %v", err)
	}
	if b != GoDSP {
		t.Fatalf("expected GoDSP backend, got %s", b.Name())
	}
	if _, err := ParseBackend("fftw"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestTransformDCIsMean(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for n := 1; n <= 33; n++ {
		c := randomCurve(r, n)
		coeffs := Transform(c, nil)
		if coeffs[0].Frequency != 0 {
			t.Fatalf("n=%d: DC frequency = %d", n, coeffs[0].Frequency)
		}
		if !closeTo(coeffs[0].Amplitude, c.Mean(), 1e-12) {
			t.Fatalf("n=%d: DC = %v, want mean %v", n, coeffs[0].Amplitude, c.Mean())
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 5, 16, 64, 99} {
		c := randomCurve(r, n)
		coeffs := Reorder(Transform(c, nil))
		for i, want := range c {
			got := Synthesize(coeffs, -float64(i)/float64(n))
			if !closeTo(got, want, 1e-9) {
				t.Fatalf("n=%d sample %d: got %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestTransformEmpty(t *testing.T) {
	if got := Transform(nil, nil); got != nil {
		t.Fatalf("expected nil coefficients, got %v", got)
	}
}

func TestCoefficientAt(t *testing.T) {
	c := Coefficient{Amplitude: 2, Frequency: -1}
	if got := c.At(0.25); !closeTo(got, 2i, 1e-15) {
		t.Fatalf("At(0.25) = %v, want 2i", got)
	}
	if c.Radius() != 2 {
		t.Fatalf("Radius() = %g, want 2", c.Radius())
	}
}
