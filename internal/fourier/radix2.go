package fourier

import "math"

type radix2Backend struct{}

func (radix2Backend) Name() string { return "radix2" }

func (radix2Backend) Forward(dst, src []complex128) []complex128 {
	n := len(src)
	if !isPowerOfTwo(n) {
		return DFT.Forward(dst, src)
	}
	dst = prepare(dst, n)
	copy(dst, src)
	radix2(dst)
	return dst
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// radix2 performs an in-place radix-2 Cooley-Tukey FFT.
// len(x) must be a power of 2.
func radix2(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	// Butterfly operations
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		angleStep := -2.0 * math.Pi / float64(size)
		for i := 0; i < n; i += size {
			for k := range half {
				angle := angleStep * float64(k)
				w := complex(math.Cos(angle), math.Sin(angle))
				a := i + k
				b := a + half
				t := w * x[b]
				x[b] = x[a] - t
				x[a] += t
			}
		}
	}
}
