// Package epicycle animates a curve as a chain of rotating vectors built from
// its Fourier series.
package epicycle

import (
	"math"
	"math/cmplx"

	"github.com/olivier-w/epicycles/internal/curve"
	"github.com/olivier-w/epicycles/internal/fourier"
)

const (
	// DefaultPointsPerCircle is the outline resolution of each epicycle.
	DefaultPointsPerCircle = 50
	// DefaultVelocity advances one sub-step per frame, forward.
	DefaultVelocity = 1.0
)

// Option configures an Engine.
type Option func(*Engine)

// WithPointsPerCircle sets how many outline points each circle gets.
func WithPointsPerCircle(p int) Option {
	return func(e *Engine) {
		if p > 0 {
			e.pointsPerCircle = p
		}
	}
}

// WithVelocity sets the initial signed speed.
func WithVelocity(v float64) Option {
	return func(e *Engine) { e.velocity = v }
}

// WithBackend selects the FFT used by StartTracing.
func WithBackend(b fourier.Backend) Option {
	return func(e *Engine) {
		if b != nil {
			e.backend = b
		}
	}
}

// Engine owns a curve, its reordered Fourier coefficients and the animation
// state. It is not safe for concurrent use; every method is meant to be called
// from the goroutine driving frames.
type Engine struct {
	backend         fourier.Backend
	pointsPerCircle int
	unit            []complex128 // exp(2πi(m+1)/P)

	state      State
	input      curve.Curve
	coeffs     []fourier.Coefficient
	resolution int
	velocity   float64
	angular    float64
	elapsed    float64
	chain      []complex128
	trace      Trace
}

// New returns an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		backend:         fourier.Gonum,
		pointsPerCircle: DefaultPointsPerCircle,
		velocity:        DefaultVelocity,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.unit = make([]complex128, e.pointsPerCircle)
	for m := range e.unit {
		e.unit[m] = cmplx.Exp(complex(0, 2*math.Pi*float64(m+1)/float64(e.pointsPerCircle)))
	}
	return e
}

// State reports whether the engine is idle or tracing.
func (e *Engine) State() State { return e.state }

// Append adds an authored point. Only accepted while idle.
func (e *Engine) Append(p curve.Point) bool {
	if e.state != Idle {
		return false
	}
	e.input = append(e.input, p.Complex())
	return true
}

// SetCurve replaces the authored curve shown while idle.
func (e *Engine) SetCurve(c curve.Curve) bool {
	if e.state != Idle {
		return false
	}
	e.input = append(e.input[:0], c...)
	return true
}

// Clear returns to Idle and discards the curve, coefficients, chain and trace.
func (e *Engine) Clear() {
	e.state = Idle
	e.input = e.input[:0]
	e.coeffs = nil
	e.chain = nil
	e.resolution = 0
	e.angular = 0
	e.elapsed = 0
	e.trace.Reset()
}

// StartTracing transforms c and starts animating it at full resolution.
func (e *Engine) StartTracing(c curve.Curve) error {
	if len(c) == 0 {
		return ErrEmptyCurve
	}
	e.input = append(e.input[:0], c...)
	e.coeffs = fourier.Reorder(fourier.Transform(e.input, e.backend))
	e.resolution = len(e.coeffs)
	e.chain = make([]complex128, (e.pointsPerCircle+1)*len(e.coeffs))
	e.angular = 0
	e.elapsed = 0
	e.trace.Reset()
	e.state = Tracing
	e.computeChain(0)
	return nil
}

// SetResolution selects how many leading coefficients form the chain. It
// reports false and changes nothing unless a transform exists and
// 1 < r <= CoefficientCount()+1. An accepted change clears the trace.
func (e *Engine) SetResolution(r int) bool {
	if len(e.coeffs) == 0 || r <= 1 || r > len(e.coeffs)+1 {
		return false
	}
	e.resolution = r
	e.trace.Reset()
	e.computeChain(e.elapsed)
	return true
}

// Resolution is the current chain length setting.
func (e *Engine) Resolution() int { return e.resolution }

// SetVelocity sets the signed speed. The sign picks the direction through the
// curve; floor(|v|) sub-steps run per frame.
func (e *Engine) SetVelocity(v float64) { e.velocity = v }

// Velocity is the current signed speed.
func (e *Engine) Velocity() float64 { return e.velocity }

// AngularDistance is the progress through the current lap, in (-1, 1).
func (e *Engine) AngularDistance() float64 { return e.angular }

// LapProgress is |AngularDistance|.
func (e *Engine) LapProgress() float64 { return math.Abs(e.angular) }

// ElapsedTime is the simulated time the chain was last evaluated at.
func (e *Engine) ElapsedTime() float64 { return e.elapsed }

// Step advances the animation by dt. Idle engines ignore it.
func (e *Engine) Step(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return &InvalidTimeStepError{DeltaTime: dt}
	}
	if e.state == Idle {
		return nil
	}
	if len(e.coeffs) == 0 {
		panic("epicycle: tracing without coefficients")
	}

	sign := sign(e.velocity)
	rate := e.lapRate()
	for range int(math.Abs(e.velocity)) {
		e.angular += sign * dt * rate
		e.elapsed -= sign * dt
		if e.angular >= 1 || e.angular <= -1 {
			e.angular = 0
			e.trace.NewSegment()
		}
	}
	e.computeChain(e.elapsed)
	e.trace.Append(e.Tip())
	return nil
}

// lapRate is |frequency| of the first non-DC coefficient.
func (e *Engine) lapRate() float64 {
	if len(e.coeffs) < 2 {
		return 0
	}
	return math.Abs(float64(e.coeffs[1].Frequency))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// computeChain fills the chain buffer for time t. Each coefficient owns P+1
// slots: its vector endpoint followed by P outline points of its circle, the
// last of which lands back on the endpoint. Slots past the active
// coefficients repeat the final endpoint.
func (e *Engine) computeChain(t float64) {
	p := e.pointsPerCircle
	active := min(e.resolution, len(e.coeffs))
	c := e.chain

	a0 := e.coeffs[0]
	c[0] = a0.At(t)
	for m := range p {
		c[m+1] = a0.Amplitude
	}
	for j := 1; j < active; j++ {
		k := j * (p + 1)
		v := e.coeffs[j].At(t)
		centre := c[k-1]
		c[k] = centre + v
		for m, u := range e.unit {
			c[k+m+1] = centre + v*u
		}
	}
	stop := active*(p+1) - 1
	for i := stop; i < len(c); i++ {
		c[i] = c[stop]
	}
}

// Tip is the chain's terminal endpoint, the reconstructed curve point.
func (e *Engine) Tip() complex128 {
	if len(e.chain) == 0 {
		return 0
	}
	return e.chain[len(e.chain)-1]
}

// CoefficientCount is the number of coefficients of the current transform.
func (e *Engine) CoefficientCount() int { return len(e.coeffs) }

// Coefficients returns a copy of the reordered coefficients.
func (e *Engine) Coefficients() []fourier.Coefficient {
	return append([]fourier.Coefficient(nil), e.coeffs...)
}

// InputCurvePoints returns the authored or sampled curve.
func (e *Engine) InputCurvePoints() []curve.Point {
	return e.input.Points()
}

// ChainPoints returns the chain vertices and circle outlines in polyline
// order. It is empty while idle.
func (e *Engine) ChainPoints() []curve.Point {
	return curve.Curve(e.chain).Points()
}

// ChainCircles splits the active part of the chain into one polyline per
// coefficient: its centre, its vector endpoint and its circle outline. The
// first polyline is the DC term; the last ends on the tip.
func (e *Engine) ChainCircles() [][]curve.Point {
	if len(e.chain) == 0 {
		return nil
	}
	p := e.pointsPerCircle
	active := min(e.resolution, len(e.coeffs))
	out := make([][]curve.Point, 0, active)
	out = append(out, curve.Curve(e.chain[:p+1]).Points())
	for j := 1; j < active; j++ {
		k := j * (p + 1)
		out = append(out, curve.Curve(e.chain[k-1:k+p+1]).Points())
	}
	return out
}

// TracePoints returns every recorded tip position.
func (e *Engine) TracePoints() []curve.Point {
	return e.trace.Points()
}

// TraceSegments returns the tip positions split at lap resets.
func (e *Engine) TraceSegments() [][]curve.Point {
	return e.trace.Segments()
}

// RecentTrace returns the last k trace segments. Renderers use it to keep
// frame cost bounded while the full history stays available.
func (e *Engine) RecentTrace(k int) [][]curve.Point {
	return e.trace.Tail(k)
}

// CurrentLap returns the tip positions recorded since the last lap reset.
func (e *Engine) CurrentLap() []curve.Point {
	return curve.Curve(e.trace.Current()).Points()
}

// Reconstruct samples one lap of the active chain at n evenly spaced times,
// walking forward from t = 0 the way a positive velocity does.
func (e *Engine) Reconstruct(n int) []curve.Point {
	if n <= 0 || len(e.coeffs) == 0 {
		return nil
	}
	active := e.coeffs[:min(e.resolution, len(e.coeffs))]
	period := 1.0
	if rate := e.lapRate(); rate > 0 {
		period = 1 / rate
	}
	pts := make([]curve.Point, n)
	for i := range pts {
		t := -period * float64(i) / float64(n)
		pts[i] = curve.PointOf(fourier.Synthesize(active, t))
	}
	return pts
}
