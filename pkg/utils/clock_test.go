package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"18:30", 1110, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:00am", 0, true},
		{"", 0, true},
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

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "21:30", FormatClock(1290))
}

func TestDayOfWeek(t *testing.T) {
	// 2026-09-05 is a Saturday, 2026-09-06 a Sunday.
	dow, err := DayOfWeek("2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, 6, dow)

	dow, err = DayOfWeek("2026-09-06")
	require.NoError(t, err)
	assert.Equal(t, 0, dow)

	_, err = DayOfWeek("05/09/2026")
	assert.Error(t, err)
}

func TestDurationHours(t *testing.T) {
	h, err := DurationHours("09:00", "12:30")
	require.NoError(t, err)
	assert.InDelta(t, 3.5, h, 1e-9)
}
