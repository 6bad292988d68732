package clock

import (
	"math"
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTickReportsDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := New(ft.now)

	if got := c.Tick(); got != 0 {
		t.Fatalf("first Tick() = %g, want 0", got)
	}
	ft.advance(16 * time.Millisecond)
	if got := c.Tick(); math.Abs(got-0.016) > 1e-12 {
		t.Fatalf("Tick() = %g, want 0.016", got)
	}
	ft.advance(time.Second)
	if got := c.Tick(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Tick() = %g, want 1", got)
	}
}

func TestTickNeverNegative(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := New(ft.now)
	c.Tick()
	ft.advance(-time.Second)
	if got := c.Tick(); got != 0 {
		t.Fatalf("Tick() after clock went back = %g, want 0", got)
	}
}

func TestResetRestartsMeasurement(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := New(ft.now)
	c.Tick()
	ft.advance(5 * time.Second)
	c.Reset()
	if got := c.Tick(); got != 0 {
		t.Fatalf("Tick() after Reset = %g, want 0", got)
	}
}

func TestScale(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := New(ft.now)
	c.SetScale(0.25)
	c.SetScale(-1)
	if c.Scale() != 0.25 {
		t.Fatalf("Scale() = %g, want 0.25", c.Scale())
	}
	c.Tick()
	ft.advance(2 * time.Second)
	if got := c.Tick(); got != 0.5 {
		t.Fatalf("Tick() = %g, want 0.5", got)
	}
}

func TestNewDefaultsToWallClock(t *testing.T) {
	c := New(nil)
	c.Tick()
	if got := c.Tick(); got < 0 {
		t.Fatalf("Tick() = %g, want >= 0", got)
	}
}
