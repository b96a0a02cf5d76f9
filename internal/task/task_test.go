package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
)

func TestID_KeepsWireForm(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "number", in: `7`},
		{name: "string", in: `"a1b2"`},
		{name: "numeric string stays a string", in: `"42"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.in), &id))

			out, err := json.Marshal(id)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(out))
		})
	}
}

func TestID_RejectsGarbage(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestNewID(t *testing.T) {
	out, err := json.Marshal(NewID(" 12 "))
	require.NoError(t, err)
	assert.Equal(t, `12`, string(out))

	out, err = json.Marshal(NewID("abc"))
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(out))
}

func TestParseID(t *testing.T) {
	_, err := ParseID("  ")
	var cliErr *clierr.Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierr.InvalidTaskID, cliErr.Code)

	id, err := ParseID("3")
	require.NoError(t, err)
	assert.Equal(t, "3", id.String())
}

func TestSnapshot_DecodeAndFind(t *testing.T) {
	body := `{
		"tasks": [
			{"id": 1, "title": "Write report", "due_date": "2026-10-19", "weight": 2, "completed": false},
			{"id": 2, "title": "Ship", "due_date": "tomorrow", "weight": 3, "completed": true}
		],
		"progress": {"total_weight": 5, "completed_weight": 3, "remaining_weight": 2, "progress": 60},
		"interpretation": "Progress is at 60.0%.",
		"pie_data": [{"name": "Completed", "value": 3}, {"name": "Remaining", "value": 2}]
	}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	require.Len(t, s.Tasks, 2)
	assert.Equal(t, "Write report", s.Tasks[0].Title)
	assert.InDelta(t, 60.0, s.Progress.Progress, 1e-9)
	assert.Len(t, s.PieData, 2)

	got, ok := s.Find(NewID("2"))
	require.True(t, ok)
	assert.True(t, got.Completed)

	_, ok = s.Find(NewID("9"))
	assert.False(t, ok)
}
