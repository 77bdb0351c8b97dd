package schedule

import (
	"errors"
	"testing"
)

func TestWeekdayOf_KnownDates(t *testing.T) {
	// 01/01/2025 was a Wednesday
	day, err := WeekdayOf("01/01", 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day != "wednesday" {
		t.Fatalf("expected wednesday, got %q", day)
	}

	// Same token, different reference year
	day, err = WeekdayOf("01/01", 2024)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day != "monday" {
		t.Fatalf("expected monday, got %q", day)
	}
}

func TestWeekdayOf_Invalid(t *testing.T) {
	for _, bad := range []string{"1/1", "2025-01-01", "32/01", "10/13", "31/04", "00/05", ""} {
		if _, err := WeekdayOf(bad, 2025); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

func TestWeekdayOf_LeapDay(t *testing.T) {
	day, err := WeekdayOf("29/02", 2024)
	if err != nil {
		t.Fatalf("expected leap day to resolve in 2024, got %v", err)
	}
	if day != "thursday" {
		t.Fatalf("expected thursday, got %q", day)
	}

	if _, err := WeekdayOf("29/02", 2025); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for 29/02 in 2025, got %v", err)
	}
}

func TestIsWorkingDay(t *testing.T) {
	// 06/01/2025 was a Monday
	ok, err := IsWorkingDay("06/01", []string{"monday", "tuesday"}, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatalf("expected monday to be a working day")
	}

	ok, err = IsWorkingDay("05/01", []string{"monday", "tuesday"}, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("sunday should not be a working day")
	}
}

func TestIsWorkingDay_CaseInsensitive(t *testing.T) {
	ok, err := IsWorkingDay("06/01", []string{"MONDAY"}, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatalf("weekday comparison must be case-insensitive")
	}
}

func TestStoreKeyRoundTrip(t *testing.T) {
	key, err := ToStoreKey("05/11")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if key != "11-05" {
		t.Fatalf("expected 11-05, got %q", key)
	}

	date, err := FromStoreKey(key)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if date != "05/11" {
		t.Fatalf("round trip broke: got %q", date)
	}
}

func TestStoreKey_Invalid(t *testing.T) {
	if _, err := ToStoreKey("5/11"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := FromStoreKey("1105"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
