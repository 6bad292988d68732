package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/guptarohit/asciigraph"
	"github.com/olivier-w/epicycles/internal/curve"
	"github.com/olivier-w/epicycles/internal/fourier"
)

const spectrumWidth = 36

func newLapBar() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
}

func renderLapBar(p progress.Model, ratio float64, width int) string {
	if width < 10 {
		width = 10
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	p.Width = width
	return p.ViewAs(ratio)
}

// renderSpectrum plots the radii of the first coefficients in chain order,
// so the curve shows how quickly the circles shrink.
func renderSpectrum(coeffs []fourier.Coefficient, resolution, rows int) string {
	if rows < 4 {
		rows = 4
	}
	if len(coeffs) < 2 {
		return spectrumStyle.Render(fmt.Sprintf("%-*s", spectrumWidth, "no spectrum"))
	}
	n := len(coeffs)
	if n > spectrumWidth-8 {
		n = spectrumWidth - 8
	}
	radii := make([]float64, n)
	for i := range radii {
		radii[i] = coeffs[i].Radius()
	}
	caption := fmt.Sprintf("|a| of %d/%d circles", resolution, len(coeffs))
	plot := asciigraph.Plot(radii,
		asciigraph.Height(rows-2),
		asciigraph.Width(spectrumWidth-8),
		asciigraph.Caption(caption),
	)
	return spectrumStyle.Render(plot)
}

func renderParams(params []curve.Parameter, values []float64, selected int) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		s := fmt.Sprintf("%s=%.2f", p.Name, values[i])
		if i == selected {
			parts[i] = selectedStyle.Render(s)
		} else {
			parts[i] = subtleStyle.Render(s)
		}
	}
	return strings.Join(parts, "  ")
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
