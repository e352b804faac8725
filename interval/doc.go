// Package interval implements set algebra over sorted, non-overlapping,
// half-open ranges. Two concrete set types are provided: IntSet over int64
// points and TimeSet over time.Time instants. Sets are immutable values;
// every operation returns a new, normalized set and never mutates its
// receiver or arguments.
package interval
