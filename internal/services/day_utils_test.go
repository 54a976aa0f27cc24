package services

import (
	"errors"
	"testing"
	"time"
)

func TestCanonicalDayUsesUTCDate(t *testing.T) {
	location := time.FixedZone("UTC+3", 3*60*60)
	raw := time.Date(2026, 2, 2, 1, 35, 10, 0, location)

	day := CanonicalDay(raw)
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !day.Equal(want) || day.Location() != time.UTC {
		t.Fatalf("expected %s, got %s", want, day)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want time.Time
	}{
		{name: "monday", day: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{name: "wednesday", day: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{name: "sunday backs up six days", day: time.Date(2026, 3, 8, 23, 59, 0, 0, time.UTC), want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.day); !got.Equal(tt.want) {
				t.Fatalf("WeekStart() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWeekdayKey(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for offset, key := range want {
		if got := WeekdayKey(monday.AddDate(0, 0, offset)); got != key {
			t.Fatalf("WeekdayKey(+%d) = %q, want %q", offset, got, key)
		}
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "plain date", raw: "2026-03-04", want: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "trimmed", raw: " 2026-03-04 ", want: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "timestamp uses utc date", raw: "2026-03-04T23:30:00-02:00", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "malformed", raw: "04/03/2026", wantErr: true},
		{name: "impossible date", raw: "2026-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDay() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveDayDefaultsToCanonicalNow(t *testing.T) {
	now := time.Date(2026, 3, 4, 22, 15, 0, 0, time.UTC)

	got, err := ResolveDay("", now)
	if err != nil {
		t.Fatalf("ResolveDay() unexpected error: %v", err)
	}
	if want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ResolveDay() = %s, want %s", got, want)
	}
	if FormatDay(got) != "2026-03-04" {
		t.Fatalf("FormatDay() = %q", FormatDay(got))
	}
	if !PreviousDay(got).Equal(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("PreviousDay() = %s", PreviousDay(got))
	}
}

func TestResolveDayRejectsFarFutureDates(t *testing.T) {
	now := time.Date(2026, 3, 4, 22, 15, 0, 0, time.UTC)

	tomorrow, err := ResolveDay("2026-03-05", now)
	if err != nil {
		t.Fatalf("expected tomorrow to be accepted, got %v", err)
	}
	if FormatDay(tomorrow) != "2026-03-05" {
		t.Fatalf("ResolveDay() = %s", FormatDay(tomorrow))
	}

	for _, raw := range []string{"2026-03-06", "2099-01-01"} {
		if _, err := ResolveDay(raw, now); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ResolveDay(%q) expected ErrInvalidInput, got %v", raw, err)
		}
	}

	past, err := ResolveDay("2025-12-31", now)
	if err != nil || FormatDay(past) != "2025-12-31" {
		t.Fatalf("expected past date to resolve, got %s (%v)", FormatDay(past), err)
	}
}
