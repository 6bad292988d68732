package fourier

import (
	"slices"
	"testing"
)

func rawBins(n int) []Coefficient {
	raw := make([]Coefficient, n)
	for k := range raw {
		raw[k] = Coefficient{Amplitude: complex(float64(k), 0), Frequency: Freq(k, n)}
	}
	return raw
}

func frequencies(cs []Coefficient) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.Frequency
	}
	return out
}

func bins(cs []Coefficient) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = int(real(c.Amplitude))
	}
	return out
}

func TestReorderFourPoints(t *testing.T) {
	got := Reorder(rawBins(4))
	if want := []int{0, -1, 1, -2}; !slices.Equal(frequencies(got), want) {
		t.Fatalf("frequencies = %v, want %v", frequencies(got), want)
	}
	if want := []int{0, 3, 1, 2}; !slices.Equal(bins(got), want) {
		t.Fatalf("bins = %v, want %v", bins(got), want)
	}
}

func TestReorderFixtures(t *testing.T) {
	tests := []struct {
		n    int
		bins []int
	}{
		{1, []int{0}},
		{2, []int{0, 1}},
		{3, []int{0, 2, 1}},
		{5, []int{0, 4, 1, 3, 2}},
		{6, []int{0, 5, 1, 4, 2, 3}},
		{7, []int{0, 6, 1, 5, 2, 4, 3}},
	}
	for _, tt := range tests {
		got := Reorder(rawBins(tt.n))
		if !slices.Equal(bins(got), tt.bins) {
			t.Fatalf("n=%d: bins = %v, want %v", tt.n, bins(got), tt.bins)
		}
	}
}

func TestReorderIsPermutation(t *testing.T) {
	for n := 1; n <= 40; n++ {
		got := bins(Reorder(rawBins(n)))
		if got[0] != 0 {
			t.Fatalf("n=%d: slot 0 holds bin %d", n, got[0])
		}
		slices.Sort(got)
		for k, b := range got {
			if b != k {
				t.Fatalf("n=%d: bins %v are not a permutation", n, got)
			}
		}
	}
}

func TestReorderGrowsOutward(t *testing.T) {
	for n := 2; n <= 40; n++ {
		fs := frequencies(Reorder(rawBins(n)))
		for i := 1; i < len(fs); i++ {
			if abs(fs[i]) < abs(fs[i-1]) {
				t.Fatalf("n=%d: |freq| shrinks at %d: %v", n, i, fs)
			}
		}
	}
}

func TestReorderLeavesInputAlone(t *testing.T) {
	raw := rawBins(6)
	Reorder(raw)
	for k, c := range raw {
		if int(real(c.Amplitude)) != k {
			t.Fatalf("input reordered at %d", k)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
