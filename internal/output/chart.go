package output

import (
	"math"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
	pieFilled = "●"
	pieEmpty  = "·"
)

// ProgressBar draws a bar of the given width with pct percent filled.
func ProgressBar(width int, pct float64) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	n := int(math.Floor(float64(width)*pct/100 + 0.5))
	return strings.Repeat(barFilled, n) + strings.Repeat(barEmpty, width-n)
}

// Pie draws a disc of the given radius, filled clockwise from twelve
// o'clock up to fraction. Cells are two columns wide so the disc looks
// round in a terminal.
func Pie(radius int, fraction float64) []string {
	if radius <= 0 {
		return nil
	}
	fraction = math.Max(0, math.Min(1, fraction))
	r := float64(radius)

	lines := make([]string, 0, 2*radius+1)
	for y := -radius; y <= radius; y++ {
		var b strings.Builder
		for x := -radius; x <= radius; x++ {
			fx, fy := float64(x), float64(y)
			if fx*fx+fy*fy > r*r+r*0.5 {
				b.WriteString("  ")
				continue
			}
			if sweep(fx, fy) < fraction {
				b.WriteString(pieFilled + " ")
			} else {
				b.WriteString(pieEmpty + " ")
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// sweep returns the clockwise angle of (x, y) from twelve o'clock as a
// fraction of a full turn. y grows downward.
func sweep(x, y float64) float64 {
	a := math.Atan2(x, -y)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}
