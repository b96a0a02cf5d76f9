// Package progress derives display values from a progress snapshot: the
// rounded percentage label and the pie chart's stroke geometry.
package progress

import (
	"math"
	"strconv"

	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

// Radius is the pie chart radius in chart units.
const Radius = 16

// Circumference returns 2πr for the chart radius.
func Circumference() float64 {
	return 2 * math.Pi * Radius
}

// Geometry is the stroke layout of the completion arc.
type Geometry struct {
	Circumference float64
	Fraction      float64 // completed_weight / total_weight
	Offset        float64 // stroke dash offset
}

// DisplayPercent rounds the snapshot's percentage for display. Halves round
// up, as in the browser client.
func DisplayPercent(p task.Progress) int {
	return int(math.Floor(p.Progress + 0.5))
}

// Label formats the rounded percentage, e.g. "50%".
func Label(p task.Progress) string {
	return strconv.Itoa(DisplayPercent(p)) + "%"
}

// Fraction returns completed/total weight. ok is false when the total
// weight is not positive; callers must then leave the chart alone.
func Fraction(p task.Progress) (f float64, ok bool) {
	if p.TotalWeight <= 0 {
		return 0, false
	}
	return p.CompletedWeight / p.TotalWeight, true
}

// DashOffset returns the dash offset that leaves an arc proportional to f.
func DashOffset(f float64) float64 {
	return Circumference() * (1 - f)
}

// Pie computes the chart geometry for p.
func Pie(p task.Progress) (Geometry, bool) {
	f, ok := Fraction(p)
	if !ok {
		return Geometry{}, false
	}
	return Geometry{
		Circumference: Circumference(),
		Fraction:      f,
		Offset:        DashOffset(f),
	}, true
}

// Compute sums task weights the way the store does. The percentage is 0
// when there is no weight at all.
func Compute(tasks []task.Task) task.Progress {
	var p task.Progress
	for _, t := range tasks {
		p.TotalWeight += t.Weight
		if t.Completed {
			p.CompletedWeight += t.Weight
		}
	}
	p.RemainingWeight = p.TotalWeight - p.CompletedWeight
	if p.TotalWeight > 0 {
		p.Progress = p.CompletedWeight / p.TotalWeight * 100 //nolint:mnd // percent
	}
	return p
}
