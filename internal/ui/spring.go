package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// easer follows a target value with a critically damped spring so speed and
// zoom changes glide instead of jumping.
type easer struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newEaser(fps int, frequency, damping, start float64) easer {
	return easer{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    start,
		target: start,
	}
}

func (e *easer) set(target float64) {
	e.target = target
}

// jump moves to v immediately.
func (e *easer) jump(v float64) {
	e.pos, e.vel, e.target = v, 0, v
}

func (e *easer) step() float64 {
	if e.settled() {
		e.pos, e.vel = e.target, 0
		return e.pos
	}
	e.pos, e.vel = e.spring.Update(e.pos, e.vel, e.target)
	return e.pos
}

func (e *easer) settled() bool {
	tol := 1e-3 * math.Max(1, math.Abs(e.target))
	return math.Abs(e.pos-e.target) < tol && math.Abs(e.vel) < tol
}
