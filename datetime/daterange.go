package datetime

import (
	"fmt"
	"time"

	"github.com/valv/kitbag/interval"
)

// DateRange is an inclusive range of calendar dates. A range with To before
// From is empty.
type DateRange struct {
	From Date
	To   Date
}

// IsEmpty reports whether the range contains no dates.
func (r DateRange) IsEmpty() bool {
	return r.From.IsZero() || r.To.IsZero() || r.To.Before(r.From)
}

// Len returns the number of dates in the range, both endpoints included.
func (r DateRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.From.DaysUntil(r.To) + 1
}

// Contains reports whether d lies within the range, endpoints included.
func (r DateRange) Contains(d Date) bool {
	return !r.IsEmpty() && !d.Before(r.From) && !d.After(r.To)
}

// Days returns every date in the range in ascending order.
func (r DateRange) Days() []Date {
	if r.IsEmpty() {
		return nil
	}
	out := make([]Date, 0, r.Len())
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// TimeSet returns the range as an interval.TimeSet spanning from midnight
// at the start of From to midnight after To, in the given location.
func (r DateRange) TimeSet(loc *time.Location) interval.TimeSet {
	if r.IsEmpty() {
		return interval.TimeSet{}
	}
	return interval.NewTimeSet(interval.TimeSpan{
		Start: r.From.In(loc),
		End:   r.To.AddDays(1).In(loc),
	})
}

// String returns the range as "2006-01-02..2006-01-09".
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
