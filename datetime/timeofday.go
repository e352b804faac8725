package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a clock time within a single day, second resolution,
// without a date or location. The zero value is midnight.
type TimeOfDay struct {
	secs int // seconds since midnight, 0..86399
}

// NewTimeOfDay builds a TimeOfDay, rejecting out-of-range components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("datetime: no such time of day: %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay{secs: hour*3600 + minute*60 + second}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	tod, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return tod
}

// todRegex matches "15:04:05" and "15:04".
var todRegex = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// ParseTimeOfDay parses "15:04:05" or "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	matches := todRegex.FindStringSubmatch(s)
	if matches == nil {
		return TimeOfDay{}, fmt.Errorf("datetime: parse time of day %q: want HH:MM[:SS]", s)
	}
	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])
	second := 0
	if matches[3] != "" {
		second, _ = strconv.Atoi(matches[3])
	}
	tod, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("datetime: parse time of day %q: %w", s, err)
	}
	return tod, nil
}

// TimeOfDayOf returns the clock time of t in t's location, truncated to
// whole seconds.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{secs: t.Hour()*3600 + t.Minute()*60 + t.Second()}
}

// Hour returns the hour within the day.
func (t TimeOfDay) Hour() int { return t.secs / 3600 }

// Minute returns the minute within the hour.
func (t TimeOfDay) Minute() int { return (t.secs / 60) % 60 }

// Second returns the second within the minute.
func (t TimeOfDay) Second() int { return t.secs % 60 }

// Compare returns -1 if t is before o, 0 if equal, +1 if after.
func (t TimeOfDay) Compare(o TimeOfDay) int { return cmpInt(t.secs, o.secs) }

// Add returns the clock time d later, wrapped onto a single day, together
// with the number of days carried. The carry is negative when the result
// wrapped backwards.
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, int) {
	total := t.secs + int(d/time.Second)
	carry := total / secondsPerDay
	rem := total % secondsPerDay
	if rem < 0 {
		rem += secondsPerDay
		carry--
	}
	return TimeOfDay{secs: rem}, carry
}

// Sub returns the signed duration from o to t within a day.
func (t TimeOfDay) Sub(o TimeOfDay) time.Duration {
	return time.Duration(t.secs-o.secs) * time.Second
}

// String returns the time in "15:04:05" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
