package helpers

import (
	"strings"
	"time"
)

// ResolvePeriod turns a period token into the start date of the analysis
// window anchored at today. Unknown tokens fall back to three months
// back with a warning; callers never see an error.
func ResolvePeriod(period string, today time.Time) time.Time {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "1m", "1 month":
		return today.AddDate(0, -1, 0)
	case "2m":
		return today.AddDate(0, -2, 0)
	case "3m":
		return today.AddDate(0, -3, 0)
	case "6m":
		return today.AddDate(0, -6, 0)
	case "1y":
		return today.AddDate(-1, 0, 0)
	case "2y":
		return today.AddDate(-2, 0, 0)
	case "3y":
		return today.AddDate(-3, 0, 0)
	case "5y":
		return today.AddDate(-5, 0, 0)
	case "ytd":
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	case "mtd":
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case "wtd":
		if today.Weekday() == time.Sunday {
			return today.AddDate(0, 0, -6)
		}
		return today.AddDate(0, 0, -(int(today.Weekday()) - 1))
	case "1w":
		return today.AddDate(0, 0, -7)
	case "2w":
		return today.AddDate(0, 0, -14)
	default:
		Logger.Warnln("unrecognized period '" + period + "', defaulting to 3 months")
		return today.AddDate(0, -3, 0)
	}
}

// CountBusinessDays counts Mon-Fri days after start, up to and
// including end.
func CountBusinessDays(start time.Time, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if !end.After(start) {
		return 0
	}

	count := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var periodLabels = map[string]string{
	"1m":  "Last Month",
	"2m":  "Last 2 Months",
	"3m":  "Last Quarter",
	"6m":  "Last 6 Months",
	"1y":  "Last Year",
	"2y":  "Last 2 Years",
	"3y":  "Last 3 Years",
	"5y":  "Last 5 Years",
	"ytd": "Year to Date",
	"mtd": "Month to Date",
	"wtd": "Week to Date",
	"1w":  "Last Week",
	"2w":  "Last 2 Weeks",
}

// PeriodLabel returns the display label for a period token, or the token
// itself when there is no match.
func PeriodLabel(period string) string {
	if label, ok := periodLabels[strings.ToLower(strings.TrimSpace(period))]; ok {
		return label
	}
	return period
}

// IsValidForMonthlyAnalysis reports whether a period is long enough for
// monthly-granularity aggregation. Periods under two months are not.
func IsValidForMonthlyAnalysis(period string) bool {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "2m", "3m", "6m", "1y", "2y", "5y":
		return true
	default:
		return false
	}
}
