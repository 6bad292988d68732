package epicycle

import "github.com/olivier-w/epicycles/internal/curve"

// Trace is the growing path drawn by the chain tip. It is split into
// segments; a lap reset starts a new, disconnected segment without dropping
// earlier ones.
type Trace struct {
	points []complex128
	starts []int
}

// Append adds a tip position to the current segment.
func (tr *Trace) Append(z complex128) {
	if len(tr.starts) == 0 {
		tr.starts = append(tr.starts, 0)
	}
	tr.points = append(tr.points, z)
}

// NewSegment closes the current segment. The next Append starts a fresh one.
func (tr *Trace) NewSegment() {
	if len(tr.starts) == 0 || tr.starts[len(tr.starts)-1] == len(tr.points) {
		return
	}
	tr.starts = append(tr.starts, len(tr.points))
}

// Reset drops every point.
func (tr *Trace) Reset() {
	tr.points = tr.points[:0]
	tr.starts = tr.starts[:0]
}

// Len is the total number of recorded points.
func (tr *Trace) Len() int { return len(tr.points) }

// Current returns a copy of the in-progress segment.
func (tr *Trace) Current() []complex128 {
	if len(tr.starts) == 0 {
		return nil
	}
	start := tr.starts[len(tr.starts)-1]
	return append([]complex128(nil), tr.points[start:]...)
}

// Points returns every recorded point in order.
func (tr *Trace) Points() []curve.Point {
	return curve.Curve(tr.points).Points()
}

// Segments returns the recorded points split at lap resets.
func (tr *Trace) Segments() [][]curve.Point {
	segs := make([][]curve.Point, 0, len(tr.starts))
	for i, start := range tr.starts {
		end := len(tr.points)
		if i+1 < len(tr.starts) {
			end = tr.starts[i+1]
		}
		if end > start {
			segs = append(segs, curve.Curve(tr.points[start:end]).Points())
		}
	}
	return segs
}

// Tail returns the last k segments, oldest first.
func (tr *Trace) Tail(k int) [][]curve.Point {
	if k <= 0 || len(tr.starts) == 0 {
		return nil
	}
	first := max(len(tr.starts)-k, 0)
	segs := make([][]curve.Point, 0, len(tr.starts)-first)
	for i := first; i < len(tr.starts); i++ {
		end := len(tr.points)
		if i+1 < len(tr.starts) {
			end = tr.starts[i+1]
		}
		if start := tr.starts[i]; end > start {
			segs = append(segs, curve.Curve(tr.points[start:end]).Points())
		}
	}
	return segs
}
