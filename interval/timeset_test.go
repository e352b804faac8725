package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at is shorthand for an instant n minutes past a fixed epoch.
func at(n int) time.Time {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(n) * time.Minute)
}

func span(lo, hi int) TimeSpan {
	return TimeSpan{Start: at(lo), End: at(hi)}
}

func TestNewTimeSet_Normalizes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       []TimeSpan
		expected TimeSet
	}{
		{
			name:     "empty input",
			in:       nil,
			expected: TimeSet{},
		},
		{
			name:     "drops empty spans",
			in:       []TimeSpan{span(5, 5), span(9, 3)},
			expected: TimeSet{},
		},
		{
			name:     "sorts and merges",
			in:       []TimeSpan{span(10, 12), span(1, 5), span(4, 8)},
			expected: NewTimeSet(span(1, 8), span(10, 12)),
		},
		{
			name:     "merges adjacent spans",
			in:       []TimeSpan{span(0, 5), span(5, 9)},
			expected: NewTimeSet(span(0, 9)),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := NewTimeSet(tc.in...)
			assert.True(t, got.Equal(tc.expected), "got %s, want %s", got, tc.expected)
		})
	}
}

func TestTimeSet_SubtractSplitsSpan(t *testing.T) {
	t.Parallel()

	s := NewTimeSet(span(0, 60))
	got := s.Subtract(span(20, 40))

	expected := NewTimeSet(span(0, 20), span(40, 60))
	assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
	assert.Equal(t, time.Duration(40)*time.Minute, got.Duration())
}

func TestTimeSet_Intersect(t *testing.T) {
	t.Parallel()

	a := NewTimeSet(span(0, 30), span(50, 70))
	b := NewTimeSet(span(10, 55))

	got := a.Intersect(b)
	expected := NewTimeSet(span(10, 30), span(50, 55))

	assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
	assert.True(t, b.Intersect(a).Equal(expected))
	assert.True(t, a.Intersect(TimeSet{}).IsEmpty())
}

func TestTimeSet_Contains(t *testing.T) {
	t.Parallel()

	s := NewTimeSet(span(10, 20))

	assert.True(t, s.Contains(at(10)))
	assert.True(t, s.Contains(at(19)))
	assert.False(t, s.Contains(at(20)), "upper bound is exclusive")
	assert.False(t, s.Contains(at(9)))
}

func TestTimeSet_FilterByDuration(t *testing.T) {
	t.Parallel()

	s := NewTimeSet(span(0, 1), span(10, 30), span(40, 41))
	got := s.Filter(func(sp TimeSpan) bool { return sp.Duration() >= 5*time.Minute })

	require.Len(t, got.Spans(), 1)
	assert.True(t, got.Equal(NewTimeSet(span(10, 30))), "got %s", got)
}

func TestTimeSet_EqualDisregardsLocation(t *testing.T) {
	t.Parallel()

	// The same instants expressed in different locations are equal.
	inUTC := NewTimeSet(span(0, 10))
	shifted := NewTimeSet(TimeSpan{
		Start: at(0).In(time.FixedZone("X", 3600)),
		End:   at(10).In(time.FixedZone("X", 3600)),
	})

	assert.True(t, inUTC.Equal(shifted))
}
