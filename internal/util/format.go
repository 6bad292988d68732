package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPoint formats a world position with two decimals, e.g. "(1.50, -2.00)".
func FormatPoint(x, y float64) string {
	return fmt.Sprintf("(%.2f, %.2f)", x, y)
}

// FormatSpeed formats a velocity multiplier, e.g. "x2" or "x-1.5".
func FormatSpeed(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("x%d", int(v))
	}
	return fmt.Sprintf("x%.1f", v)
}
