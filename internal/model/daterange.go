package model

import (
	"fmt"
	"time"
)

// DateRange is an inclusive, gapless span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a validated day-granular range. Both bounds are
// truncated to UTC midnight; an inverted range is a configuration error.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("invalid date range: start %s after end %s",
			s.Format("2006-01-02"), e.Format("2006-01-02"))
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseDateRange builds a range from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e)
}

// Len returns the number of days in the range, inclusive of both ends.
func (r DateRange) Len() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Days expands the range into its ordered sequence of calendar days.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether the given day falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = truncateDay(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
