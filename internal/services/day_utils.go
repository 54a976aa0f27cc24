package services

import (
	"strings"
	"time"
)

const (
	DayLayout     = "2006-01-02"
	maxFutureDays = 1
)

var weekdayKeys = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CanonicalDay is the identity of a ledger day: 00:00 UTC of value's UTC date.
func CanonicalDay(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func PreviousDay(value time.Time) time.Time {
	return CanonicalDay(value).AddDate(0, 0, -1)
}

// WeekStart returns the Monday of value's week.
func WeekStart(value time.Time) time.Time {
	day := CanonicalDay(value)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

func WeekdayKey(value time.Time) string {
	return weekdayKeys[(int(CanonicalDay(value).Weekday())+6)%7]
}

func FormatDay(value time.Time) string {
	return CanonicalDay(value).Format(DayLayout)
}

// ParseDay accepts YYYY-MM-DD, or an RFC 3339 timestamp whose UTC date is used.
func ParseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if parsed, err := time.ParseInLocation(DayLayout, value, time.UTC); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return CanonicalDay(parsed), nil
	}
	return time.Time{}, invalidInput("invalid date %q, expected YYYY-MM-DD", value)
}

// ResolveDay falls back to the current day when raw is empty. Dates more than
// one day past now are rejected; the extra day covers clients ahead of UTC.
func ResolveDay(raw string, now time.Time) (time.Time, error) {
	today := CanonicalDay(now)
	if strings.TrimSpace(raw) == "" {
		return today, nil
	}
	day, err := ParseDay(raw)
	if err != nil {
		return time.Time{}, err
	}
	if day.After(today.AddDate(0, 0, maxFutureDays)) {
		return time.Time{}, invalidInput("date %s is in the future", FormatDay(day))
	}
	return day, nil
}
