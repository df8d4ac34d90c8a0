// Package timeslot implements the interval arithmetic behind availability
// computation. Intervals are half-open [Start, End) ranges expressed as
// minutes since midnight; they are transient values and are never persisted.
package timeslot

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned by ParseTime for anything that is not a
// zero-padded HH:MM between 00:00 and 23:59.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Subtract removes toSubtract from the list of free intervals.
//
// The operation is deliberately conservative: it only acts when exactly one
// interval in the list overlaps toSubtract. With zero or multiple overlaps the
// input is returned unchanged. In practice blocked slots have the same
// granularity as the free windows they carve out, so multiple overlaps do not
// occur; whether they should be handled differently is pending product review.
func Subtract(intervals []Interval, toSubtract Interval) []Interval {
	overlapIdx := -1
	for i, iv := range intervals {
		if iv.Overlaps(toSubtract) {
			if overlapIdx != -1 {
				return intervals
			}
			overlapIdx = i
		}
	}
	if overlapIdx == -1 {
		return intervals
	}

	target := intervals[overlapIdx]
	remnants := make([]Interval, 0, 2)
	if toSubtract.Start > target.Start {
		remnants = append(remnants, Interval{Start: target.Start, End: toSubtract.Start})
	}
	if toSubtract.End < target.End {
		remnants = append(remnants, Interval{Start: toSubtract.End, End: target.End})
	}

	result := make([]Interval, 0, len(intervals)+1)
	result = append(result, intervals[:overlapIdx]...)
	result = append(result, remnants...)
	result = append(result, intervals[overlapIdx+1:]...)
	return result
}

// SliceWindows cuts the interval into back-to-back windows of the given
// duration, starting at iv.Start. A trailing remainder shorter than duration
// is dropped.
func SliceWindows(iv Interval, durationMinutes int) []Interval {
	if durationMinutes <= 0 {
		return nil
	}

	var windows []Interval
	for start := iv.Start; start+durationMinutes <= iv.End; start += durationMinutes {
		windows = append(windows, Interval{Start: start, End: start + durationMinutes})
	}
	return windows
}

// ParseTime converts a zero-padded "HH:MM" string to minutes since midnight.
func ParseTime(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	var hours, minutes int
	for _, c := range []byte{value[0], value[1], value[3], value[4]} {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
		}
	}
	hours = int(value[0]-'0')*10 + int(value[1]-'0')
	minutes = int(value[3]-'0')*10 + int(value[4]-'0')

	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}

	return hours*60 + minutes, nil
}

// FormatMinutes converts minutes since midnight back to "HH:MM".
// Round-trips exactly with ParseTime for 0..1439.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
