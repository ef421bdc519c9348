package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2025-01-15T08:30:00Z",
			want:  time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2025-01-15T08:30:00+05:30",
			want:  time.Date(2025, 1, 15, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "naive with seconds",
			input: "2025-01-15T08:30:00",
			want:  time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "naive without seconds",
			input: "2025-01-15T08:30",
			want:  time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: "2025-01-15 08:30:00",
			want:  time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-time", "15/01/2025", "2025-01-15TXX:30"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2025-01-15T08:30:00Z")
	assert.Error(t, err)
}

func TestOverlapsHalfOpen(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	assert.True(t, Overlaps(at(9, 0), at(9, 45), at(9, 30), at(10, 0)))
	assert.True(t, Overlaps(at(9, 0), at(10, 0), at(9, 15), at(9, 30)))

	// Touching endpoints do not overlap.
	assert.False(t, Overlaps(at(9, 0), at(9, 30), at(9, 30), at(10, 0)))
	assert.False(t, Overlaps(at(9, 30), at(10, 0), at(9, 0), at(9, 30)))
	assert.False(t, Overlaps(at(8, 0), at(8, 30), at(9, 0), at(9, 30)))
}

func TestClipToDay(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	start, end, ok := ClipToDay(
		time.Date(2025, 1, 14, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 1, 30, 0, 0, time.UTC),
		day,
	)
	require.True(t, ok)
	assert.Equal(t, DayStart(day), start)
	assert.Equal(t, time.Date(2025, 1, 15, 1, 30, 0, 0, time.UTC), end)

	_, _, ok = ClipToDay(
		time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC),
		day,
	)
	assert.False(t, ok)
}

func TestSlotGrid(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	grid := SlotGrid(day, 8, 20, 30)

	require.Len(t, grid, 24)
	assert.Equal(t, At(day, 8, 0), grid[0].Start)
	assert.Equal(t, At(day, 8, 30), grid[0].End)
	assert.Equal(t, At(day, 19, 30), grid[23].Start)
	assert.Equal(t, At(day, 20, 0), grid[23].End)

	assert.Nil(t, SlotGrid(day, 8, 20, 0))
}

func TestRoundUpMinutes(t *testing.T) {
	assert.Equal(t, 20, RoundUpMinutes(16, 5))
	assert.Equal(t, 20, RoundUpMinutes(20, 5))
	assert.Equal(t, 25, RoundUpMinutes(20.1, 5))
	assert.Equal(t, 5, RoundUpMinutes(0.5, 5))
}
