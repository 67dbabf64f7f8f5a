package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:30", 0, true},
		{"25:00", 0, true},
		{"08:60", 0, true},
		{"garbage", 0, true},
		{"08:00junk", 0, true},
		{"junk08:00", 0, true},
		{"08:00:30", 0, true},
		{"08", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewShiftWindow_RejectsWrapping(t *testing.T) {
	// overnight windows (start >= end) are not modeled
	_, err := NewShiftWindow(22*60, 6*60)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewShiftWindow(480, 480)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewShiftWindow(-1, 480)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestShiftWindow_Overlaps(t *testing.T) {
	day, err := ParseWindow("08:00", "16:00")
	require.NoError(t, err)
	evening, err := ParseWindow("16:00", "22:00")
	require.NoError(t, err)
	late, err := ParseWindow("14:00", "22:00")
	require.NoError(t, err)

	// half-open: touching at the boundary is not an overlap
	assert.False(t, day.Overlaps(evening))
	assert.False(t, evening.Overlaps(day))

	assert.True(t, day.Overlaps(late))
	assert.True(t, late.Overlaps(day))

	assert.True(t, day.Overlaps(day))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-06-10", FormatDate(d))

	_, err = ParseDate("10.06.2024")
	assert.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	in := time.Date(2024, 6, 10, 15, 30, 45, 1, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), NormalizeDate(in))
}

func TestDaysBetween(t *testing.T) {
	start, _ := ParseDate("2024-06-10")
	assert.Equal(t, 1, DaysBetween(start, start))
	assert.Equal(t, 7, DaysBetween(start, start.AddDate(0, 0, 6)))
	assert.Equal(t, 0, DaysBetween(start, start.AddDate(0, 0, -1)))
}
