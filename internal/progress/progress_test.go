package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weightboard/internal/task"
)

func weighted(weights []float64, done []bool) []task.Task {
	tasks := make([]task.Task, len(weights))
	for i := range weights {
		tasks[i] = task.Task{Weight: weights[i], Completed: done[i]}
	}
	return tasks
}

func TestCompute_WeightedHalf(t *testing.T) {
	p := Compute(weighted([]float64{2, 3, 5}, []bool{false, false, true}))

	assert.InDelta(t, 10.0, p.TotalWeight, 1e-9)
	assert.InDelta(t, 5.0, p.CompletedWeight, 1e-9)
	assert.InDelta(t, 5.0, p.RemainingWeight, 1e-9)
	assert.InDelta(t, 50.0, p.CompletedWeight/p.TotalWeight*100, 1e-9)
	assert.InDelta(t, 50.0, p.Progress, 1e-9)
}

func TestCompute_ZeroWeight(t *testing.T) {
	p := Compute(nil)
	assert.Zero(t, p.Progress)
	assert.False(t, math.IsNaN(p.Progress))

	_, ok := Fraction(p)
	assert.False(t, ok)
	_, ok = Pie(p)
	assert.False(t, ok)
}

func TestDashOffset(t *testing.T) {
	c := Circumference()
	assert.InDelta(t, 2*math.Pi*16, c, 1e-9)

	tests := []struct {
		fraction float64
		want     float64
	}{
		{fraction: 0, want: c},
		{fraction: 0.5, want: 0.5 * c},
		{fraction: 1, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DashOffset(tt.fraction), 1e-9, "fraction %v", tt.fraction)
	}
}

func TestPie(t *testing.T) {
	g, ok := Pie(task.Progress{TotalWeight: 4, CompletedWeight: 1})
	require.True(t, ok)
	assert.InDelta(t, 0.25, g.Fraction, 1e-9)
	assert.InDelta(t, 0.75*Circumference(), g.Offset, 1e-9)
}

func TestLabel_RoundsForDisplayOnly(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{progress: 0, want: "0%"},
		{progress: 33.333, want: "33%"},
		{progress: 66.5, want: "67%"},
		{progress: 99.6, want: "100%"},
		{progress: 100, want: "100%"},
	}
	for _, tt := range tests {
		p := task.Progress{Progress: tt.progress}
		assert.Equal(t, tt.want, Label(p))
		assert.InDelta(t, tt.progress, p.Progress, 1e-12)
	}
}
