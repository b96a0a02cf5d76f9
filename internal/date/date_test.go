package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTime_UsesUTC(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	local := time.Date(2026, time.October, 20, 5, 0, 0, 0, zone)

	assert.Equal(t, "2026-10-19", FromTime(local).String())
}

func TestToday(t *testing.T) {
	now := func() time.Time { return time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC) }
	assert.Equal(t, "2026-10-19", Today(now).String())
	assert.Equal(t, "2026-10-20", Today(now).AddDays(1).String())
}

func TestParse(t *testing.T) {
	d, err := Parse("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", d.AddDays(1).String())

	_, err = Parse("tomorrow")
	assert.Error(t, err)
}
