package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	const today = "2026-10-19"

	tests := []struct {
		name string
		due  string
		want DateClass
	}{
		{name: "exact today", due: "2026-10-19", want: ClassToday},
		{name: "today inside a longer token", due: "due 2026-10-19 noon", want: ClassToday},
		{name: "tomorrow keyword", due: "tomorrow", want: ClassTomorrow},
		{name: "tomorrow inside text", due: "by tomorrow evening", want: ClassTomorrow},
		{name: "tomorrow's ISO date is not tomorrow", due: "2026-10-20", want: ClassWeek},
		{name: "this-week keyword", due: "this-week", want: ClassWeek},
		{name: "case sensitive", due: "Tomorrow", want: ClassWeek},
		{name: "empty", due: "", want: ClassWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.due, today))
		})
	}
}

func TestClassify_TodayWinsOverTomorrow(t *testing.T) {
	assert.Equal(t, ClassToday, Classify("2026-10-19 or tomorrow", "2026-10-19"))
}
