// Package billingcycle derives the sequence of monthly billing periods a
// member owes from their enrollment anchor date.
//
// Periods are zero-padded "YYYY-MM" strings and are always compared
// lexically; the format is validated at write boundaries so that lexical
// order and calendar order never diverge.
package billingcycle

import (
	"fmt"
	"regexp"
	"time"
)

// MaxPeriods bounds generation at 10 years. Pathological anchor dates stop
// here instead of looping; callers must not rely on periods past this limit.
const MaxPeriods = 120

var (
	periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	datePattern   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// IsPeriod reports whether s is a well-formed "YYYY-MM" period.
func IsPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

// IsDate reports whether s is a well-formed "YYYY-MM-DD" date.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

// Periods returns the ordered billing periods owed by a member anchored at
// anchor, as of today. The anchor's month is included; the current month is
// included only once today's day-of-month has reached the anchor's
// day-of-month (the recurring cutoff). An anchor in the future yields an
// empty sequence.
func Periods(anchor, today time.Time) []string {
	startYear, startMonth, cutoffDay := anchor.Year(), int(anchor.Month()), anchor.Day()
	currentYear, currentMonth, currentDay := today.Year(), int(today.Month()), today.Day()

	periods := make([]string, 0, 12)
	loopYear, loopMonth := startYear, startMonth

	for i := 0; i < MaxPeriods; i++ {
		if loopYear > currentYear || (loopYear == currentYear && loopMonth > currentMonth) {
			break
		}
		if loopYear == currentYear && loopMonth == currentMonth && currentDay < cutoffDay {
			break
		}

		periods = append(periods, fmt.Sprintf("%04d-%02d", loopYear, loopMonth))

		loopMonth++
		if loopMonth > 12 {
			loopMonth = 1
			loopYear++
		}
	}

	return periods
}
