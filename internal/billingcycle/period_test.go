package billingcycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodsFromAnchor(t *testing.T) {
	periods := Periods(date(2024, time.January, 10), date(2024, time.April, 12))
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03", "2024-04"}, periods)
}

func TestPeriodsCutoffDayExcludesCurrentMonth(t *testing.T) {
	// Anchored on the 15th: on the 14th the current month is not yet owed.
	periods := Periods(date(2024, time.January, 15), date(2024, time.March, 14))
	assert.Equal(t, []string{"2024-01", "2024-02"}, periods)

	periods = Periods(date(2024, time.January, 15), date(2024, time.March, 15))
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, periods)
}

func TestPeriodsFutureAnchor(t *testing.T) {
	periods := Periods(date(2025, time.June, 1), date(2024, time.April, 12))
	assert.Empty(t, periods)
}

func TestPeriodsCrossYear(t *testing.T) {
	periods := Periods(date(2023, time.November, 1), date(2024, time.February, 20))
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, periods)
}

func TestPeriodsCapped(t *testing.T) {
	periods := Periods(date(1990, time.January, 1), date(2024, time.April, 12))
	require.Len(t, periods, MaxPeriods)
	assert.Equal(t, "1990-01", periods[0])
	assert.Equal(t, "1999-12", periods[len(periods)-1])
}

func TestAnchorPrecedence(t *testing.T) {
	today := date(2024, time.April, 12)

	anchor := Anchor("2023-05-01", "2010-01-01", "2005-01-01", today)
	assert.Equal(t, date(2023, time.May, 1), anchor)

	anchor = Anchor("", "2010-01-01", "2005-01-01", today)
	assert.Equal(t, date(2010, time.January, 1), anchor)

	anchor = Anchor("", "", "2005-01-01", today)
	assert.Equal(t, date(2005, time.January, 1), anchor)
}

func TestAnchorTimestampFormat(t *testing.T) {
	today := date(2024, time.April, 12)
	anchor := Anchor("", "", "2021-03-09T18:30:00Z", today)
	assert.Equal(t, 2021, anchor.Year())
	assert.Equal(t, time.March, anchor.Month())
	assert.Equal(t, 9, anchor.Day())
}

func TestAnchorUnparseableFallsBackToToday(t *testing.T) {
	today := date(2024, time.April, 12)
	anchor := Anchor("", "", "not-a-date", today)
	assert.Equal(t, today, anchor)

	anchor = Anchor("", "", "", today)
	assert.Equal(t, today, anchor)
}

func TestIsPeriod(t *testing.T) {
	assert.True(t, IsPeriod("2024-01"))
	assert.True(t, IsPeriod("2024-12"))
	assert.False(t, IsPeriod("2024-13"))
	assert.False(t, IsPeriod("2024-1"))
	assert.False(t, IsPeriod("2024-01-01"))
	assert.False(t, IsPeriod(""))
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-02-29"))
	assert.False(t, IsDate("2024-13-01"))
	assert.False(t, IsDate("2024-02"))
	assert.False(t, IsDate("unscheduled"))
}
