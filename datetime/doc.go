// Package datetime provides calendar value objects that are smaller than
// time.Time: a civil Date without clock or zone, a TimeOfDay without a
// date, and an inclusive DateRange that bridges into the interval package.
// All types are immutable values with text round-trip support.
package datetime
