package fourier

// Reorder arranges raw-bin coefficients for drawing: the DC term first, then
// alternating the smallest remaining negative and positive frequencies, so any
// prefix of the result keeps the lowest-frequency terms.
//
// The slot 2·(n/2)−1 is written last with bin n−n/2, overwriting whatever the
// loop put there. For n=1 that slot index is −1 and wraps to the last slot.
func Reorder(raw []Coefficient) []Coefficient {
	n := len(raw)
	if n == 0 {
		return nil
	}
	out := make([]Coefficient, n)
	out[0] = raw[0]
	half := n / 2
	for i := 1; i < half; i++ {
		out[2*i] = raw[i]
		out[2*i-1] = raw[n-i]
	}
	if n%2 == 1 {
		out[2*half] = raw[half]
	}
	slot := 2*half - 1
	if slot < 0 {
		slot += n
	}
	out[slot] = raw[(n-half)%n]
	return out
}
