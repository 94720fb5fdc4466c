package availability

import (
	"sort"
	"time"
)

// DateRange is a half-open span of whole days: From inclusive, To exclusive.
// A guest checks out on the morning of To, so a new stay may begin on that
// same date.
type DateRange struct {
	From time.Time `json:"dateFrom"`
	To   time.Time `json:"dateTo"`
}

func (r DateRange) valid() bool {
	return r.From.Before(r.To)
}

// Nights returns the length of the range in whole nights.
func (r DateRange) Nights() int {
	return int(Day(r.To).Sub(Day(r.From)) / (24 * time.Hour))
}

// Day truncates t to midnight UTC. All date math in this package is
// whole-day granularity and timezone-naive.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPast reports whether date falls strictly before the start of today.
// Today itself is bookable.
func IsPast(date, today time.Time) bool {
	return Day(date).Before(Day(today))
}

// IntervalSet is an ordered sequence of non-overlapping blocked ranges.
type IntervalSet struct {
	ranges []DateRange
}

// FromRanges drops empty or inverted input ranges and sorts the rest by
// start date. Overlapping input is kept as-is: two real bookings never
// overlap by construction, and merging is not this type's job.
func FromRanges(in []DateRange) IntervalSet {
	ranges := make([]DateRange, 0, len(in))
	for _, r := range in {
		if !r.valid() {
			continue
		}
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].From.Before(ranges[j].From)
	})
	return IntervalSet{ranges: ranges}
}

// Overlaps reports whether the candidate's interior intersects any range in
// the set. A candidate starting exactly where a range ends is not an
// overlap: back-to-back stays are allowed.
func (s IntervalSet) Overlaps(candidate DateRange) bool {
	for _, r := range s.ranges {
		if candidate.From.Before(r.To) && candidate.To.After(r.From) {
			return true
		}
	}
	return false
}

// Ranges returns a copy of the blocked ranges in start-date order.
func (s IntervalSet) Ranges() []DateRange {
	out := make([]DateRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len returns the number of blocked ranges in the set.
func (s IntervalSet) Len() int {
	return len(s.ranges)
}

// Resolved is the availability verdict derived from one venue's booking
// list at a given point in time. It is recomputed from scratch whenever the
// booking list changes, never patched incrementally, so it cannot drift
// from the server's ground truth.
type Resolved struct {
	Blocked IntervalSet
	today   time.Time
}

// Resolve builds the blocked set from the booked ranges plus the synthetic
// everything-before-today rule.
func Resolve(booked []DateRange, today time.Time) Resolved {
	return Resolved{
		Blocked: FromRanges(booked),
		today:   Day(today),
	}
}

// IsRangeAvailable reports whether the candidate range can be booked: its
// interior must be clear of every blocked range and it must not start in
// the past. A zero-night candidate is a validation concern, not an
// availability one, and is not rejected here.
func (rv Resolved) IsRangeAvailable(r DateRange) bool {
	return !rv.Blocked.Overlaps(r) && !IsPast(r.From, rv.today)
}

// DisabledRanges returns every range a date picker should grey out: the
// span from the zero time up to today, followed by each booked range. The
// past is expressed as a bounded range so callers can render it.
func (rv Resolved) DisabledRanges() []DateRange {
	blocked := rv.Blocked.Ranges()
	out := make([]DateRange, 0, len(blocked)+1)
	out = append(out, DateRange{To: rv.today})
	out = append(out, blocked...)
	return out
}
