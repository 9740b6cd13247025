package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Resolve returns the dues amount in effect for period. The history is
// interpreted as a step function: the entry with the greatest start period
// not after the requested period wins. A period before every entry resolves
// to the oldest known price; an empty history resolves to zero.
//
// Comparison is lexical on "YYYY-MM" strings, which sorts correctly for
// well-formed input. Format is enforced when entries are written, never
// here: Resolve must not fail on a malformed record.
func Resolve(history []PriceHistoryEntry, period string) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}

	sorted := make([]PriceHistoryEntry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartPeriod > sorted[j].StartPeriod
	})

	for _, entry := range sorted {
		if entry.StartPeriod <= period {
			return entry.Amount
		}
	}

	return sorted[len(sorted)-1].Amount
}
