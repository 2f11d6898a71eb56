package analytics

import (
	"fmt"
	"time"
)

// TimeRange is a named trailing window for the analytics view.
type TimeRange string

const (
	Range1Month  TimeRange = "1month"
	Range3Months TimeRange = "3months"
	Range6Months TimeRange = "6months"
	Range1Year   TimeRange = "1year"

	DefaultRange = Range6Months
)

// ParseTimeRange accepts the four named windows; empty means DefaultRange.
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(s); r {
	case "":
		return DefaultRange, nil
	case Range1Month, Range3Months, Range6Months, Range1Year:
		return r, nil
	}
	return "", fmt.Errorf("analytics: unknown time range %q", s)
}

// Start returns the beginning of the window ending at now.
func (r TimeRange) Start(now time.Time) time.Time {
	switch r {
	case Range1Month:
		return now.AddDate(0, -1, 0)
	case Range3Months:
		return now.AddDate(0, -3, 0)
	case Range1Year:
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, -6, 0)
}
