package curve

import (
	"fmt"
	"math"
)

func pow3(v float64) float64 { return v * v * v }

func signedPow(v, e float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), e), v)
}

var presets = []Parametric{
	{
		Name:   "circle",
		X:      func(t float64, p []float64) float64 { return p[0] * math.Cos(t) },
		Y:      func(t float64, p []float64) float64 { return p[0] * math.Sin(t) },
		Params: []Parameter{{Name: "r", Default: 5}},
	},
	{
		Name:   "ellipse",
		X:      func(t float64, p []float64) float64 { return p[0] * math.Cos(t) },
		Y:      func(t float64, p []float64) float64 { return p[1] * math.Sin(t) },
		Params: []Parameter{{Name: "a", Default: 7}, {Name: "b", Default: 3}},
	},
	{
		Name: "heart",
		X:    func(t float64, p []float64) float64 { return p[0] * 16 * pow3(math.Sin(t)) },
		Y: func(t float64, p []float64) float64 {
			return p[0] * (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		},
		Params: []Parameter{{Name: "s", Default: 0.4}},
	},
	{
		Name:   "rose",
		X:      func(t float64, p []float64) float64 { return p[1] * math.Cos(p[0]*t) * math.Cos(t) },
		Y:      func(t float64, p []float64) float64 { return p[1] * math.Cos(p[0]*t) * math.Sin(t) },
		Params: []Parameter{{Name: "k", Default: 3}, {Name: "r", Default: 6}},
	},
	{
		Name: "epitrochoid",
		X: func(t float64, p []float64) float64 {
			R, r, d := p[0], p[1], p[2]
			return (R+r)*math.Cos(t) - d*math.Cos((R+r)/r*t)
		},
		Y: func(t float64, p []float64) float64 {
			R, r, d := p[0], p[1], p[2]
			return (R+r)*math.Sin(t) - d*math.Sin((R+r)/r*t)
		},
		Params: []Parameter{{Name: "R", Default: 3}, {Name: "r", Default: 1}, {Name: "d", Default: 2}},
	},
	{
		Name: "hypotrochoid",
		X: func(t float64, p []float64) float64 {
			R, r, d := p[0], p[1], p[2]
			return (R-r)*math.Cos(t) + d*math.Cos((R-r)/r*t)
		},
		Y: func(t float64, p []float64) float64 {
			R, r, d := p[0], p[1], p[2]
			return (R-r)*math.Sin(t) - d*math.Sin((R-r)/r*t)
		},
		Params: []Parameter{{Name: "R", Default: 5}, {Name: "r", Default: 1}, {Name: "d", Default: 3}},
	},
	{
		Name:   "lissajous",
		X:      func(t float64, p []float64) float64 { return p[2] * math.Sin(p[0]*t+math.Pi/2) },
		Y:      func(t float64, p []float64) float64 { return p[2] * math.Sin(p[1]*t) },
		Params: []Parameter{{Name: "a", Default: 3}, {Name: "b", Default: 2}, {Name: "A", Default: 6}},
	},
	{
		Name:   "squircle",
		X:      func(t float64, p []float64) float64 { return p[1] * signedPow(math.Cos(t), 2/p[0]) },
		Y:      func(t float64, p []float64) float64 { return p[1] * signedPow(math.Sin(t), 2/p[0]) },
		Params: []Parameter{{Name: "n", Default: 8}, {Name: "r", Default: 5}},
	},
}

// Presets returns the built-in parametric curves in display order.
func Presets() []Parametric {
	return append([]Parametric(nil), presets...)
}

// Preset looks up a built-in curve by name.
func Preset(name string) (Parametric, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Parametric{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetNames lists the names accepted by Preset.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
