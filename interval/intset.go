package interval

import (
	"fmt"
	"sort"
	"strings"
)

// Span is a half-open range [Lo, Hi) of int64 points. A span with Lo >= Hi
// is empty and is dropped during set normalization.
type Span struct {
	Lo int64
	Hi int64
}

// Empty reports whether the span contains no points.
func (s Span) Empty() bool { return s.Lo >= s.Hi }

// Len returns the number of points in the span, zero for an empty span.
func (s Span) Len() int64 {
	if s.Empty() {
		return 0
	}
	return s.Hi - s.Lo
}

// Contains reports whether p lies within [Lo, Hi).
func (s Span) Contains(p int64) bool { return p >= s.Lo && p < s.Hi }

// Overlaps reports whether the two spans share at least one point.
func (s Span) Overlaps(o Span) bool {
	return !s.Empty() && !o.Empty() && s.Lo < o.Hi && o.Lo < s.Hi
}

// touches reports whether the spans overlap or are directly adjacent, i.e.
// whether they can be merged into a single span.
func (s Span) touches(o Span) bool {
	return !s.Empty() && !o.Empty() && s.Lo <= o.Hi && o.Lo <= s.Hi
}

// String returns the span in mathematical notation, e.g. "[3,7)".
func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Lo, s.Hi) }

// IntSet is an immutable set of int64 points held as sorted, non-overlapping,
// non-adjacent half-open spans. The zero value is the empty set.
type IntSet struct {
	spans []Span
}

// NewIntSet builds a set from arbitrary spans. Overlapping and adjacent
// spans are merged, empty spans dropped.
func NewIntSet(spans ...Span) IntSet {
	return IntSet{spans: normalizeSpans(spans)}
}

// normalizeSpans sorts the input by Lo and merges every overlapping or
// adjacent pair. The input slice is not modified.
func normalizeSpans(in []Span) []Span {
	tmp := make([]Span, 0, len(in))
	for _, s := range in {
		if !s.Empty() {
			tmp = append(tmp, s)
		}
	}
	if len(tmp) == 0 {
		return nil
	}
	sort.Slice(tmp, func(i, j int) bool { return tmp[i].Lo < tmp[j].Lo })

	out := tmp[:1]
	for _, s := range tmp[1:] {
		last := &out[len(out)-1]
		if s.Lo <= last.Hi {
			if s.Hi > last.Hi {
				last.Hi = s.Hi
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Spans returns a copy of the normalized spans in ascending order.
func (s IntSet) Spans() []Span {
	if len(s.spans) == 0 {
		return nil
	}
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// IsEmpty reports whether the set contains no points.
func (s IntSet) IsEmpty() bool { return len(s.spans) == 0 }

// Len returns the total number of points across all spans.
func (s IntSet) Len() int64 {
	var n int64
	for _, sp := range s.spans {
		n += sp.Len()
	}
	return n
}

// Contains reports whether p is a member of the set.
func (s IntSet) Contains(p int64) bool {
	// Binary search for the first span ending after p.
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].Hi > p })
	return i < len(s.spans) && s.spans[i].Contains(p)
}

// Covers reports whether every point of sp is a member of the set. An empty
// span is trivially covered.
func (s IntSet) Covers(sp Span) bool {
	if sp.Empty() {
		return true
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].Hi > sp.Lo })
	return i < len(s.spans) && s.spans[i].Lo <= sp.Lo && sp.Hi <= s.spans[i].Hi
}

// Add returns the set extended with sp.
func (s IntSet) Add(sp Span) IntSet {
	if sp.Empty() {
		return s
	}
	return NewIntSet(append(s.Spans(), sp)...)
}

// Subtract returns the set with every point of sp removed. A span that is
// split by sp yields two spans.
func (s IntSet) Subtract(sp Span) IntSet {
	if sp.Empty() || s.IsEmpty() {
		return s
	}
	out := make([]Span, 0, len(s.spans)+1)
	for _, cur := range s.spans {
		if !cur.Overlaps(sp) {
			out = append(out, cur)
			continue
		}
		if cur.Lo < sp.Lo {
			out = append(out, Span{Lo: cur.Lo, Hi: sp.Lo})
		}
		if sp.Hi < cur.Hi {
			out = append(out, Span{Lo: sp.Hi, Hi: cur.Hi})
		}
	}
	return IntSet{spans: out}
}

// SubtractSet returns the set difference s \ o.
func (s IntSet) SubtractSet(o IntSet) IntSet {
	out := s
	for _, sp := range o.spans {
		out = out.Subtract(sp)
	}
	return out
}

// Union returns the set union of s and o.
func (s IntSet) Union(o IntSet) IntSet {
	return NewIntSet(append(s.Spans(), o.spans...)...)
}

// Intersect returns the set of points present in both s and o.
func (s IntSet) Intersect(o IntSet) IntSet {
	var out []Span
	i, j := 0, 0
	for i < len(s.spans) && j < len(o.spans) {
		a, b := s.spans[i], o.spans[j]
		lo, hi := a.Lo, a.Hi
		if b.Lo > lo {
			lo = b.Lo
		}
		if b.Hi < hi {
			hi = b.Hi
		}
		if lo < hi {
			out = append(out, Span{Lo: lo, Hi: hi})
		}
		// Advance whichever span ends first.
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return IntSet{spans: out}
}

// Filter returns the set containing only the spans for which keep returns
// true. Filtering operates on whole normalized spans, not on points.
func (s IntSet) Filter(keep func(Span) bool) IntSet {
	var out []Span
	for _, sp := range s.spans {
		if keep(sp) {
			out = append(out, sp)
		}
	}
	return IntSet{spans: out}
}

// Equal reports whether both sets contain exactly the same points.
func (s IntSet) Equal(o IntSet) bool {
	if len(s.spans) != len(o.spans) {
		return false
	}
	for i := range s.spans {
		if s.spans[i] != o.spans[i] {
			return false
		}
	}
	return true
}

// String returns the spans joined by spaces, e.g. "[1,3) [5,9)". The empty
// set renders as "[)".
func (s IntSet) String() string {
	if s.IsEmpty() {
		return "[)"
	}
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}
