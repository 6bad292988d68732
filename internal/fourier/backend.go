package fourier

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	gonumfft "gonum.org/v1/gonum/dsp/fourier"
)

// Backend computes the unnormalised forward transform
// X[k] = Σ x[n]·exp(−2πi·k·n/N). If dst is nil a new slice is returned;
// otherwise len(dst) must equal len(src).
type Backend interface {
	Name() string
	Forward(dst, src []complex128) []complex128
}

var (
	// Gonum uses gonum's mixed-radix complex FFT. Any length.
	Gonum Backend = gonumBackend{}
	// Radix2 is an in-place Cooley-Tukey FFT for power-of-two lengths that
	// falls back to DFT otherwise.
	Radix2 Backend = radix2Backend{}
	// GoDSP uses go-dsp, which handles any length through Bluestein's
	// algorithm.
	GoDSP Backend = goDSPBackend{}
	// DFT is the direct O(N²) sum.
	DFT Backend = dftBackend{}
)

// Backends lists every available backend, default first.
func Backends() []Backend {
	return []Backend{Gonum, Radix2, GoDSP, DFT}
}

// ParseBackend looks a backend up by name, case-insensitively.
func ParseBackend(name string) (Backend, error) {
	for _, b := range Backends() {
		if strings.EqualFold(b.Name(), name) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unknown fft backend %q", name)
}

func prepare(dst []complex128, n int) []complex128 {
	if dst == nil {
		return make([]complex128, n)
	}
	if len(dst) != n {
		panic("fourier: destination length mismatch")
	}
	return dst
}

type gonumBackend struct{}

func (gonumBackend) Name() string { return "gonum" }

func (gonumBackend) Forward(dst, src []complex128) []complex128 {
	dst = prepare(dst, len(src))
	if len(src) < 2 {
		copy(dst, src)
		return dst
	}
	return gonumfft.NewCmplxFFT(len(src)).Coefficients(dst, src)
}

type goDSPBackend struct{}

func (goDSPBackend) Name() string { return "godsp" }

func (goDSPBackend) Forward(dst, src []complex128) []complex128 {
	dst = prepare(dst, len(src))
	if len(src) == 0 {
		return dst
	}
	copy(dst, fft.FFT(src))
	return dst
}

type dftBackend struct{}

func (dftBackend) Name() string { return "dft" }

func (dftBackend) Forward(dst, src []complex128) []complex128 {
	n := len(src)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for j, x := range src {
			// reduce k·j mod n first so the angle stays small for large n
			arg := -2 * math.Pi * float64((k*j)%n) / float64(n)
			sum += x * cmplx.Exp(complex(0, arg))
		}
		out[k] = sum
	}
	dst = prepare(dst, n)
	copy(dst, out)
	return dst
}
