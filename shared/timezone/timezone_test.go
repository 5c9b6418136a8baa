package timezone_test

import (
	"testing"
	"time"

	"camargue/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("Today() must be truncated to midnight, got %v", today)
	}

	if today.Location() != time.UTC {
		t.Errorf("Today() must be anchored in UTC, got %v", today.Location())
	}
}

func TestParseDate(t *testing.T) {
	d, err := timezone.ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}

	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 1 {
		t.Errorf("ParseDate() returned wrong date: %v", d)
	}

	if got := timezone.FormatDate(d); got != "2025-06-01" {
		t.Errorf("FormatDate() = %s, want 2025-06-01", got)
	}

	if _, err := timezone.ParseDate("01/06/2025"); err == nil {
		t.Error("ParseDate() accepted a non-ISO date")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}
}
