package billingcycle

import (
	"strings"
	"time"
)

// Anchor resolves the date a member's billing history is computed from:
// the most recent re-enrollment wins, then the masonic join date, then the
// application join date. An unparseable or missing anchor falls back to
// today, so only the current month is billed.
func Anchor(rejoinDate, masonicJoinDate, joinDate string, today time.Time) time.Time {
	raw := rejoinDate
	if raw == "" {
		raw = masonicJoinDate
	}
	if raw == "" {
		raw = joinDate
	}
	if raw == "" {
		return today
	}

	if t, ok := parseAnchor(raw); ok {
		return t
	}
	return today
}

func parseAnchor(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	if IsDate(raw) {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err == nil {
			return t, true
		}
	}

	// Legacy records store the app join date as a full ISO timestamp.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}

	return time.Time{}, false
}
