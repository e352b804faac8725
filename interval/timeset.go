package interval

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeSpan is a half-open range [Start, End) of instants. A span whose End
// does not come after its Start is empty.
type TimeSpan struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the span contains no instants.
func (s TimeSpan) Empty() bool { return !s.End.After(s.Start) }

// Duration returns the length of the span, zero for an empty span.
func (s TimeSpan) Duration() time.Duration {
	if s.Empty() {
		return 0
	}
	return s.End.Sub(s.Start)
}

// Contains reports whether t lies within [Start, End).
func (s TimeSpan) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End)
}

// Overlaps reports whether the two spans share at least one instant.
func (s TimeSpan) Overlaps(o TimeSpan) bool {
	return !s.Empty() && !o.Empty() && s.Start.Before(o.End) && o.Start.Before(s.End)
}

// String returns the span as "[start,end)" in RFC 3339.
func (s TimeSpan) String() string {
	return fmt.Sprintf("[%s,%s)", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
}

// TimeSet is an immutable set of instants held as sorted, non-overlapping,
// non-adjacent half-open spans. The zero value is the empty set.
type TimeSet struct {
	spans []TimeSpan
}

// NewTimeSet builds a set from arbitrary spans. Overlapping and adjacent
// spans are merged, empty spans dropped.
func NewTimeSet(spans ...TimeSpan) TimeSet {
	return TimeSet{spans: normalizeTimeSpans(spans)}
}

func normalizeTimeSpans(in []TimeSpan) []TimeSpan {
	tmp := make([]TimeSpan, 0, len(in))
	for _, s := range in {
		if !s.Empty() {
			tmp = append(tmp, s)
		}
	}
	if len(tmp) == 0 {
		return nil
	}
	sort.Slice(tmp, func(i, j int) bool { return tmp[i].Start.Before(tmp[j].Start) })

	out := tmp[:1]
	for _, s := range tmp[1:] {
		last := &out[len(out)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Spans returns a copy of the normalized spans in ascending order.
func (s TimeSet) Spans() []TimeSpan {
	if len(s.spans) == 0 {
		return nil
	}
	out := make([]TimeSpan, len(s.spans))
	copy(out, s.spans)
	return out
}

// IsEmpty reports whether the set contains no instants.
func (s TimeSet) IsEmpty() bool { return len(s.spans) == 0 }

// Duration returns the summed length of all spans.
func (s TimeSet) Duration() time.Duration {
	var d time.Duration
	for _, sp := range s.spans {
		d += sp.Duration()
	}
	return d
}

// Contains reports whether t is a member of the set.
func (s TimeSet) Contains(t time.Time) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].End.After(t) })
	return i < len(s.spans) && s.spans[i].Contains(t)
}

// Covers reports whether every instant of sp is a member of the set. An
// empty span is trivially covered.
func (s TimeSet) Covers(sp TimeSpan) bool {
	if sp.Empty() {
		return true
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].End.After(sp.Start) })
	return i < len(s.spans) &&
		!s.spans[i].Start.After(sp.Start) && !sp.End.After(s.spans[i].End)
}

// Add returns the set extended with sp.
func (s TimeSet) Add(sp TimeSpan) TimeSet {
	if sp.Empty() {
		return s
	}
	return NewTimeSet(append(s.Spans(), sp)...)
}

// Subtract returns the set with every instant of sp removed. A span that is
// split by sp yields two spans.
func (s TimeSet) Subtract(sp TimeSpan) TimeSet {
	if sp.Empty() || s.IsEmpty() {
		return s
	}
	out := make([]TimeSpan, 0, len(s.spans)+1)
	for _, cur := range s.spans {
		if !cur.Overlaps(sp) {
			out = append(out, cur)
			continue
		}
		if cur.Start.Before(sp.Start) {
			out = append(out, TimeSpan{Start: cur.Start, End: sp.Start})
		}
		if sp.End.Before(cur.End) {
			out = append(out, TimeSpan{Start: sp.End, End: cur.End})
		}
	}
	return TimeSet{spans: out}
}

// SubtractSet returns the set difference s \ o.
func (s TimeSet) SubtractSet(o TimeSet) TimeSet {
	out := s
	for _, sp := range o.spans {
		out = out.Subtract(sp)
	}
	return out
}

// Union returns the set union of s and o.
func (s TimeSet) Union(o TimeSet) TimeSet {
	return NewTimeSet(append(s.Spans(), o.spans...)...)
}

// Intersect returns the set of instants present in both s and o.
func (s TimeSet) Intersect(o TimeSet) TimeSet {
	var out []TimeSpan
	i, j := 0, 0
	for i < len(s.spans) && j < len(o.spans) {
		a, b := s.spans[i], o.spans[j]
		lo, hi := a.Start, a.End
		if b.Start.After(lo) {
			lo = b.Start
		}
		if b.End.Before(hi) {
			hi = b.End
		}
		if lo.Before(hi) {
			out = append(out, TimeSpan{Start: lo, End: hi})
		}
		if a.End.Before(b.End) {
			i++
		} else {
			j++
		}
	}
	return TimeSet{spans: out}
}

// Filter returns the set containing only the spans for which keep returns
// true. Filtering operates on whole normalized spans, not on instants.
func (s TimeSet) Filter(keep func(TimeSpan) bool) TimeSet {
	var out []TimeSpan
	for _, sp := range s.spans {
		if keep(sp) {
			out = append(out, sp)
		}
	}
	return TimeSet{spans: out}
}

// Equal reports whether both sets contain exactly the same instants.
func (s TimeSet) Equal(o TimeSet) bool {
	if len(s.spans) != len(o.spans) {
		return false
	}
	for i := range s.spans {
		if !s.spans[i].Start.Equal(o.spans[i].Start) || !s.spans[i].End.Equal(o.spans[i].End) {
			return false
		}
	}
	return true
}

// String returns the spans joined by spaces. The empty set renders as "[)".
func (s TimeSet) String() string {
	if s.IsEmpty() {
		return "[)"
	}
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}
