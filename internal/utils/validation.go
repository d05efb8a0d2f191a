package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Results are two-digit board numbers; anything outside [0, 99] is rejected
// before any write happens.
const (
	MinResult = 0
	MaxResult = 99
)

// ValidateResult checks that a published result is within the allowed range.
func ValidateResult(v int) error {
	if v < MinResult || v > MaxResult {
		return fmt.Errorf("result %d out of range [%d, %d]", v, MinResult, MaxResult)
	}
	return nil
}

// ParseResult parses a result value from text and validates its range.
func ParseResult(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("result %q is not an integer", s)
	}
	if err := ValidateResult(v); err != nil {
		return 0, err
	}
	return v, nil
}

// resultDateLayouts are the accepted import date formats. time.Parse rejects
// impossible calendar dates (30/02, 31/04) for these layouts.
var resultDateLayouts = []string{"02/01/2006", "02-01-2006"}

// ParseResultDate parses a DD/MM/YYYY or DD-MM-YYYY date.
func ParseResultDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range resultDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q is not a valid DD/MM/YYYY or DD-MM-YYYY date", s)
}

// scheduledTimeLayouts accept both 24-hour and 12-hour clock input for a
// game's daily schedule.
var scheduledTimeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "03:04 PM"}

// NormalizeScheduledTime parses a time-of-day in 12- or 24-hour form and
// returns it normalized to HH:MM.
func NormalizeScheduledTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("scheduled time %q is not a valid time of day", s)
}

// UsernameSlug derives a public username candidate from an email address:
// the local part lowered and stripped to [a-z0-9]. Returns "" when nothing
// survives the stripping.
func UsernameSlug(email string) string {
	local := email
	if idx := strings.Index(email, "@"); idx >= 0 {
		local = email[:idx]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DateOnly truncates a timestamp to its calendar date in the given location.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
