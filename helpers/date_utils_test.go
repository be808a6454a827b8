package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodMonths(t *testing.T) {
	today := date(2024, time.May, 15)

	assert.Equal(t, date(2024, time.April, 15), ResolvePeriod("1m", today))
	assert.Equal(t, date(2024, time.March, 15), ResolvePeriod("2m", today))
	assert.Equal(t, date(2024, time.February, 15), ResolvePeriod("3m", today))
	assert.Equal(t, date(2023, time.November, 15), ResolvePeriod("6m", today))
}

func TestResolvePeriodYears(t *testing.T) {
	today := date(2024, time.May, 15)

	assert.Equal(t, date(2023, time.May, 15), ResolvePeriod("1y", today))
	assert.Equal(t, date(2022, time.May, 15), ResolvePeriod("2y", today))
	assert.Equal(t, date(2021, time.May, 15), ResolvePeriod("3y", today))
	assert.Equal(t, date(2019, time.May, 15), ResolvePeriod("5y", today))
}

func TestResolvePeriodToDate(t *testing.T) {
	today := date(2024, time.May, 15) // a Wednesday

	assert.Equal(t, date(2024, time.January, 1), ResolvePeriod("ytd", today))
	assert.Equal(t, date(2024, time.May, 1), ResolvePeriod("mtd", today))
	assert.Equal(t, date(2024, time.May, 13), ResolvePeriod("wtd", today))
}

func TestResolvePeriodWeekToDateOnSundayGoesBackSixDays(t *testing.T) {
	sunday := date(2024, time.May, 12)
	assert.Equal(t, date(2024, time.May, 6), ResolvePeriod("wtd", sunday))
}

func TestResolvePeriodWeekToDateOnMondayStaysPut(t *testing.T) {
	monday := date(2024, time.May, 13)
	assert.Equal(t, monday, ResolvePeriod("wtd", monday))
}

func TestResolvePeriodWeeks(t *testing.T) {
	today := date(2024, time.May, 15)

	assert.Equal(t, date(2024, time.May, 8), ResolvePeriod("1w", today))
	assert.Equal(t, date(2024, time.May, 1), ResolvePeriod("2w", today))
}

func TestResolvePeriodIsCaseInsensitive(t *testing.T) {
	today := date(2024, time.May, 15)

	assert.Equal(t, date(2024, time.February, 15), ResolvePeriod("3M", today))
	assert.Equal(t, date(2024, time.January, 1), ResolvePeriod("YTD", today))
}

func TestResolvePeriodUnknownTokenDefaultsToThreeMonths(t *testing.T) {
	today := date(2024, time.May, 15)

	assert.Equal(t, date(2024, time.February, 15), ResolvePeriod("bogus", today))
	assert.Equal(t, date(2024, time.February, 15), ResolvePeriod("", today))
}

func TestResolvePeriodMonthSubtractionFollowsCalendarRules(t *testing.T) {
	// Mar 31 minus one month normalizes per Go calendar arithmetic
	today := date(2024, time.March, 31)
	assert.Equal(t, date(2024, time.March, 2), ResolvePeriod("1m", today))
}

func TestCountBusinessDaysFullWeek(t *testing.T) {
	monday := date(2024, time.May, 6)
	friday := date(2024, time.May, 10)

	assert.Equal(t, 4, CountBusinessDays(monday, friday))
}

func TestCountBusinessDaysOverWeekend(t *testing.T) {
	friday := date(2024, time.May, 3)
	nextMonday := date(2024, time.May, 6)

	// only the Monday counts
	assert.Equal(t, 1, CountBusinessDays(friday, nextMonday))
}

func TestCountBusinessDaysTwoFullWeeks(t *testing.T) {
	assert.Equal(t, 10, CountBusinessDays(date(2024, time.May, 3), date(2024, time.May, 17)))
}

func TestCountBusinessDaysDegenerateRanges(t *testing.T) {
	day := date(2024, time.May, 6)

	assert.Equal(t, 0, CountBusinessDays(day, day))
	assert.Equal(t, 0, CountBusinessDays(day, day.AddDate(0, 0, -3)))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Last Quarter", PeriodLabel("3m"))
	assert.Equal(t, "Last Quarter", PeriodLabel("3M"))
	assert.Equal(t, "Year to Date", PeriodLabel("ytd"))
	assert.Equal(t, "whatever", PeriodLabel("whatever"))
}

func TestIsValidForMonthlyAnalysis(t *testing.T) {
	for _, period := range []string{"2m", "3m", "6m", "1y", "2y", "5y"} {
		assert.True(t, IsValidForMonthlyAnalysis(period), period)
	}
	for _, period := range []string{"1m", "1w", "2w", "wtd", "mtd", "ytd", "3y", "bogus"} {
		assert.False(t, IsValidForMonthlyAnalysis(period), period)
	}
}
