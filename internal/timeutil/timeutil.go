package timeutil

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, tried in order. RFC3339 first, then the naive
// forms older clients still send.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// Parse normalizes a timestamp string into a time.Time. Values without an
// offset are interpreted as UTC.
func Parse(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// ParseDate normalizes a YYYY-MM-DD string into midnight UTC of that day.
func ParseDate(value string) (time.Time, error) {
	ts, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", value)
	}
	return ts.UTC(), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DayStart returns midnight of t's day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns midnight of the following day (exclusive day bound).
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// At returns the instant at hour:minute on t's day.
func At(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// ClipToDay trims [start, end) to day's boundaries. The third return value is
// false when the interval does not touch the day at all.
func ClipToDay(start, end, day time.Time) (time.Time, time.Time, bool) {
	dayStart := DayStart(day)
	dayEnd := DayEnd(day)
	if !Overlaps(start, end, dayStart, dayEnd) {
		return time.Time{}, time.Time{}, false
	}
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	return start, end, true
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// SlotGrid discretizes [startHour, endHour) of day into fixed-width slots.
func SlotGrid(day time.Time, startHour, endHour, slotMinutes int) []Interval {
	if slotMinutes <= 0 {
		return nil
	}
	width := time.Duration(slotMinutes) * time.Minute
	from := At(day, startHour, 0)
	until := At(day, endHour, 0)

	slots := make([]Interval, 0, int(until.Sub(from)/width))
	for cursor := from; cursor.Before(until); cursor = cursor.Add(width) {
		slots = append(slots, Interval{Start: cursor, End: cursor.Add(width)})
	}
	return slots
}

// Minutes is a convenience for duration arithmetic on minute-valued params.
func Minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}

// RoundUpMinutes rounds m up to the next multiple of step.
func RoundUpMinutes(m float64, step int) int {
	if step <= 0 {
		step = 1
	}
	whole := int(m)
	if float64(whole) < m {
		whole++
	}
	if rem := whole % step; rem != 0 {
		whole += step - rem
	}
	if whole < step {
		whole = step
	}
	return whole
}
