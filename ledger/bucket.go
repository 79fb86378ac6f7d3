/*
bucket.go - Time-period granularities, truncation and labels

PURPOSE:
  The two sales engines slice time differently, and both rules live here so
  the divergence is visible in one place:

  CALENDAR TRUNCATION (aggregation):
    Truncate maps a timestamp to the start of its containing period in the
    UTC calendar. Two events in the same UTC calendar month share a bucket
    even when they are far apart in raw days, and a week bucket starts on
    the ISO-8601 Monday, not a rolling 7 days from the query start.

  FIXED-WIDTH STEPS (comparison):
    CompareStep returns a flat duration (day=24h, week=7d, month=28d) used
    to cut each comparison window into sub-windows anchored at the window's
    own start. Deliberately NOT calendar-aware.

  The two rules are independently well-defined and both are load-bearing;
  they are kept distinct rather than unified.

SEE ALSO:
  - sales/engine.go: Calendar-truncated aggregation
  - sales/compare.go: Fixed-width window comparison
*/
package ledger

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME PERIOD - Bucket granularity
// =============================================================================

type TimePeriod string

const (
	PeriodDay   TimePeriod = "day"
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
	PeriodYear  TimePeriod = "year"
)

// ParseTimePeriod validates a caller-supplied granularity. Anything outside
// the enumerated set is a validation error, raised before any storage access.
func ParseTimePeriod(s string) (TimePeriod, error) {
	switch TimePeriod(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return TimePeriod(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimePeriod, s)
}

// =============================================================================
// CALENDAR TRUNCATION - Used by sales aggregation
// =============================================================================

// Truncate returns the start of the period containing t in the UTC calendar.
// Weeks start on the ISO-8601 Monday.
func (p TimePeriod) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch p {
	case PeriodDay:
		return startOfDay(t)
	case PeriodWeek:
		d := startOfDay(t)
		// Monday=0 .. Sunday=6
		back := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -back)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// =============================================================================
// FIXED-WIDTH STEPS - Used by sales comparison
// =============================================================================

// CompareStep returns the fixed sub-window width for comparison queries.
// Month is a flat 28 days, a deliberate approximation distinct from the
// calendar truncation above. Year-granularity comparison is not supported.
func (p TimePeriod) CompareStep() (time.Duration, error) {
	switch p {
	case PeriodDay:
		return 24 * time.Hour, nil
	case PeriodWeek:
		return 7 * 24 * time.Hour, nil
	case PeriodMonth:
		return 28 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTimePeriod, string(p))
}

// Label formats a sub-window start for comparison output:
// day -> ISO date, week -> ISO year-week, month -> ISO year-month.
func (p TimePeriod) Label(t time.Time) string {
	t = t.UTC()
	switch p {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
