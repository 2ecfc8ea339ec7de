package schedule

import (
	"testing"
	"time"

	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

func TestIsClosedExactDate(t *testing.T) {
	days := []models.ClosedDay{
		{Date: day(2026, time.August, 15), Type: "holiday", Reason: "Ferragosto"},
	}

	closed, cd := IsClosed(day(2026, time.August, 15), days, rome)
	if !closed {
		t.Fatal("Ferragosto not detected")
	}
	if cd.Reason != "Ferragosto" {
		t.Errorf("reason = %q", cd.Reason)
	}

	if closed, _ := IsClosed(day(2026, time.August, 16), days, rome); closed {
		t.Error("day after reported closed")
	}
	if closed, _ := IsClosed(day(2027, time.August, 15), days, rome); closed {
		t.Error("non-recurring closure matched the next year")
	}
}

func TestIsClosedRecurring(t *testing.T) {
	days := []models.ClosedDay{
		{Date: day(2020, time.December, 25), Recurring: true, Reason: "Natale"},
	}

	for _, y := range []int{2025, 2026, 2030} {
		if closed, _ := IsClosed(day(y, time.December, 25), days, rome); !closed {
			t.Errorf("recurring closure missed year %d", y)
		}
	}
	if closed, _ := IsClosed(day(2026, time.December, 26), days, rome); closed {
		t.Error("recurring closure matched the wrong day")
	}
}

func TestIsClosedNormalizesTimezone(t *testing.T) {
	// A row stored as UTC midnight is 01:00/02:00 in Rome; the match has
	// to land on the same local calendar day regardless.
	utcRow := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	days := []models.ClosedDay{{Date: utcRow}}

	if closed, _ := IsClosed(day(2026, time.August, 15), days, rome); !closed {
		t.Error("UTC-stored closure missed the local day")
	}
}

func TestParseHM(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"19:30", 1170, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	} {
		got, err := ParseHM(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHM(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseHM(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestFormatHMRoundTrip(t *testing.T) {
	for _, min := range []int{0, 540, 1170, 1439} {
		got, err := ParseHM(FormatHM(min))
		if err != nil || got != min {
			t.Errorf("round trip %d -> %q -> %d, %v", min, FormatHM(min), got, err)
		}
	}
}
