package canvas

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/olivier-w/epicycles/internal/curve"
)

var white = RGB{R: 255, G: 255, B: 255}

func TestSetMapsBrailleBits(t *testing.T) {
	c := New(2, 1, ProfileNone)
	c.Set(0, 0, white)
	c.Set(1, 3, white)
	c.Set(2, 1, white)
	got := []rune(c.String())
	want := []rune{0x2800 + 0x01 + 0x80, 0x2800 + 0x02}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("String() mismatch (-want +got):\n%s", d)
	}
}

func TestSetIgnoresOutOfRange(t *testing.T) {
	c := New(1, 1, ProfileNone)
	c.Set(-1, 0, white)
	c.Set(2, 0, white)
	c.Set(0, 4, white)
	if got := c.String(); got != " " {
		t.Fatalf("expected blank canvas, got %q", got)
	}
}

func TestLineLightsEndpoints(t *testing.T) {
	c := New(4, 2, ProfileNone)
	c.Line(0, 0, 7, 7, white)
	for i := range 8 {
		if !c.Lit(i, i) {
			t.Fatalf("expected dot (%d, %d) lit", i, i)
		}
	}
	if c.Lit(7, 0) {
		t.Fatal("expected dot (7, 0) dark")
	}

	c.Clear()
	c.Line(math.NaN(), 0, 1, 1, white)
	c.Line(-5, -5, -1, -1, white)
	if strings.TrimSpace(c.String()) != "" {
		t.Fatal("expected invalid and off-canvas lines to draw nothing")
	}
}

func TestLineClipsFarEndpoints(t *testing.T) {
	c := New(80, 20, ProfileNone)
	c.Line(-1e5, 10, 1e5, 10, white)
	lit := 0
	for x := range 160 {
		if c.Lit(x, 10) {
			lit++
		}
	}
	if lit != 160 {
		t.Fatalf("expected a full-width line, got %d of 160 dots", lit)
	}

	c = New(4, 2, ProfileNone)
	c.Line(-1e6, -1e6, 1e6, 1e6, white)
	for i := range 8 {
		if !c.Lit(i, i) {
			t.Fatalf("expected diagonal dot (%d, %d) lit", i, i)
		}
	}

	c.Clear()
	c.Line(-10, 30, 30, -10, white)
	if strings.TrimSpace(c.String()) != "" {
		t.Fatal("expected a line passing outside the corner to draw nothing")
	}
}

func TestStringEmitsColor(t *testing.T) {
	c := New(2, 1, ProfileTrueColor)
	c.Set(0, 0, RGB{R: 1, G: 2, B: 3})
	got := c.String()
	if !strings.Contains(got, "\x1b[38;2;1;2;3m") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("expected truecolor escape and reset, got %q", got)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Center: curve.Pt(1, -2), HalfHeight: 4}
	v.Zoom(0.5)
	v.Pan(3, 1)
	p := curve.Pt(2.5, -0.75)
	x, y := v.ToDots(p, 160, 96)
	got := v.FromDots(x, y, 160, 96)
	if d := cmp.Diff(p, got, cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", d)
	}

	cx, cy := v.ToDots(v.Center, 160, 96)
	if cx != 80 || cy != 48 {
		t.Fatalf("centre maps to (%g, %g), want (80, 48)", cx, cy)
	}
	// world y points up
	_, above := v.ToDots(curve.Pt(v.Center.X, v.Center.Y+1), 160, 96)
	if above >= cy {
		t.Fatalf("expected higher world y to map to a smaller dot row")
	}
}

func TestCellToWorld(t *testing.T) {
	v := DefaultViewport()
	p := v.CellToWorld(40, 12, 80, 24)
	if math.Abs(p.X-v.WorldPerDot(96)) > 1e-12 || math.Abs(p.Y+2*v.WorldPerDot(96)) > 1e-12 {
		t.Fatalf("unexpected world point %v", p)
	}
}

func TestFit(t *testing.T) {
	v := Fit([]curve.Point{curve.Pt(-2, 0), curve.Pt(4, 1)})
	if v.Center != curve.Pt(1, 0.5) {
		t.Fatalf("Center = %v, want (1, 0.5)", v.Center)
	}
	if math.Abs(v.HalfHeight-3.6) > 1e-12 {
		t.Fatalf("HalfHeight = %g, want 3.6", v.HalfHeight)
	}
	if got := Fit([]curve.Point{curve.Pt(1, 1)}); got.HalfHeight != DefaultViewport().HalfHeight {
		t.Fatalf("expected default extent for a single point, got %g", got.HalfHeight)
	}
}

func TestSceneDrawsVisibleLayersInOrder(t *testing.T) {
	red := RGB{R: 255}
	blue := RGB{B: 255}
	var s Scene
	s.Register(Layer{
		Name:   "under",
		Color:  red,
		Source: func() [][]curve.Point { return Polylines([]curve.Point{curve.Pt(0, 0)}) },
	})
	s.Register(Layer{
		Name:   "over",
		Color:  blue,
		Source: func() [][]curve.Point { return Polylines([]curve.Point{curve.Pt(0, 0)}) },
	})

	c := New(4, 2, ProfileNone)
	s.Draw(c, Viewport{HalfHeight: 1})
	if got := c.color[1*4+2]; got != blue {
		t.Fatalf("expected later layer to win, got %+v", got)
	}

	s.Layer("over").Hidden = true
	c.Clear()
	s.Draw(c, Viewport{HalfHeight: 1})
	if got := c.color[1*4+2]; got != red {
		t.Fatalf("expected hidden layer skipped, got %+v", got)
	}
	if len(s.Layers()) != 2 || s.Layer("missing") != nil {
		t.Fatal("unexpected registry contents")
	}
}

func TestPaletteColoursEachPolyline(t *testing.T) {
	var s Scene
	s.Register(Layer{
		Name:    "circles",
		Color:   white,
		Palette: Rainbow(0, 0.5),
		Source: func() [][]curve.Point {
			return [][]curve.Point{{curve.Pt(-0.5, 0)}, {curve.Pt(0.5, 0)}}
		},
	})
	c := New(4, 2, ProfileNone)
	s.Draw(c, Viewport{HalfHeight: 1})
	if got, want := c.color[1*4+1], HSV(0, 0.75, 1); got != want {
		t.Fatalf("first polyline colour %+v, want %+v", got, want)
	}
	if got, want := c.color[1*4+3], HSV(0.25, 0.75, 1); got != want {
		t.Fatalf("second polyline colour %+v, want %+v", got, want)
	}
}

func TestParseProfile(t *testing.T) {
	for name, want := range map[string]Profile{
		"none":      ProfileNone,
		"16":        ProfileANSI16,
		"256":       ProfileANSI256,
		"TrueColor": ProfileTrueColor,
		"24bit":     ProfileTrueColor,
	} {
		got, err := ParseProfile(name)
		if err != nil || got != want {
			t.Fatalf("ParseProfile(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseProfile("sepia"); err == nil {
		t.Fatal("expected unknown mode rejected")
	}
	if ProfileANSI256.String() != "256" || ProfileNone.String() != "none" {
		t.Fatal("unexpected profile names")
	}
}

func TestHSVPrimaries(t *testing.T) {
	tests := []struct {
		h    float64
		want RGB
	}{
		{0, RGB{R: 255}},
		{0.5, RGB{G: 255, B: 255}},
		{-0.5, RGB{G: 255, B: 255}},
		{1.5, RGB{G: 255, B: 255}},
	}
	for _, tt := range tests {
		got := HSV(tt.h, 1, 1)
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Fatalf("HSV(%g) mismatch (-want +got):\n%s", tt.h, d)
		}
	}
	if got := Lerp(RGB{}, white, 0.5); got.R != 127 {
		t.Fatalf("Lerp midpoint R = %d, want 127", got.R)
	}
}
