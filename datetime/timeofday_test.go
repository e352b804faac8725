package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       string
		expected TimeOfDay
		wantErr  bool
	}{
		{name: "full form", in: "13:45:30", expected: MustTimeOfDay(13, 45, 30)},
		{name: "short form", in: "13:45", expected: MustTimeOfDay(13, 45, 0)},
		{name: "midnight", in: "00:00:00", expected: TimeOfDay{}},
		{name: "end of day", in: "23:59:59", expected: MustTimeOfDay(23, 59, 59)},
		{name: "hour out of range", in: "24:00:00", wantErr: true},
		{name: "minute out of range", in: "12:60:00", wantErr: true},
		{name: "trailing junk", in: "12:30:00x", wantErr: true},
		{name: "single digits", in: "1:2:3", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	t.Parallel()

	tod := MustTimeOfDay(9, 5, 1)
	assert.Equal(t, "09:05:01", tod.String())

	var back TimeOfDay
	require.NoError(t, back.UnmarshalText([]byte("09:05:01")))
	assert.Equal(t, tod, back)
}

func TestTimeOfDay_AddCarriesDays(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		start     TimeOfDay
		d         time.Duration
		expected  TimeOfDay
		wantCarry int
	}{
		{
			name:     "within the day",
			start:    MustTimeOfDay(10, 0, 0),
			d:        90 * time.Minute,
			expected: MustTimeOfDay(11, 30, 0),
		},
		{
			name:      "wraps past midnight",
			start:     MustTimeOfDay(23, 30, 0),
			d:         time.Hour,
			expected:  MustTimeOfDay(0, 30, 0),
			wantCarry: 1,
		},
		{
			name:      "wraps backwards",
			start:     MustTimeOfDay(0, 30, 0),
			d:         -time.Hour,
			expected:  MustTimeOfDay(23, 30, 0),
			wantCarry: -1,
		},
		{
			name:      "multiple days",
			start:     MustTimeOfDay(12, 0, 0),
			d:         50 * time.Hour,
			expected:  MustTimeOfDay(14, 0, 0),
			wantCarry: 2,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, carry := tc.start.Add(tc.d)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.wantCarry, carry)
		})
	}
}

func TestTimeOfDay_SubAndCompare(t *testing.T) {
	t.Parallel()

	a := MustTimeOfDay(10, 0, 0)
	b := MustTimeOfDay(10, 30, 0)

	assert.Equal(t, 30*time.Minute, b.Sub(a))
	assert.Equal(t, -30*time.Minute, a.Sub(b))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(MustTimeOfDay(10, 0, 0)))
}

func TestTimeOfDayOf_TruncatesToSeconds(t *testing.T) {
	t.Parallel()

	got := TimeOfDayOf(time.Date(2024, time.May, 1, 13, 45, 30, 999_999_999, time.UTC))
	assert.Equal(t, MustTimeOfDay(13, 45, 30), got)
}
