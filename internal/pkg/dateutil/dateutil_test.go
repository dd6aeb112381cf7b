package dateutil

import (
	"testing"
	"time"
)

func TestDayOf_MidnightBoundary(t *testing.T) {
	// 23:30 UTC is already 06:30 the next day in WIB
	utc := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	got := DayOf(utc)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, WIB)
	if !got.Equal(want) {
		t.Errorf("DayOf(%v) = %v, want %v", utc, got, want)
	}
}

func TestDayKey(t *testing.T) {
	utc := time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC) // 01:00 WIB July 1st
	if got := DayKey(utc); got != "2024-07-01" {
		t.Errorf("DayKey = %q, want %q", got, "2024-07-01")
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	if d.Hour() != 0 || d.Location() != WIB {
		t.Errorf("ParseDay = %v, want midnight WIB", d)
	}
	if _, err := ParseDay("15-01-2024"); err == nil {
		t.Error("ParseDay accepted invalid format")
	}
}

func TestEnumerateDays(t *testing.T) {
	start, _ := ParseDay("2024-01-01")
	end, _ := ParseDay("2024-01-07")

	days := EnumerateDays(start, end)
	if len(days) != 7 {
		t.Fatalf("EnumerateDays returned %d days, want 7", len(days))
	}
	if DayKey(days[0]) != "2024-01-01" || DayKey(days[6]) != "2024-01-07" {
		t.Errorf("unexpected bounds: %s .. %s", DayKey(days[0]), DayKey(days[6]))
	}

	if got := EnumerateDays(end, start); got != nil {
		t.Errorf("EnumerateDays with inverted range = %v, want nil", got)
	}

	single := EnumerateDays(start, start)
	if len(single) != 1 {
		t.Errorf("single-day range returned %d days, want 1", len(single))
	}
}

func TestIsWeekend(t *testing.T) {
	cases := []struct {
		day  string
		want bool
		name string
	}{
		{"2024-01-05", false, ""},       // Friday
		{"2024-01-06", true, "Sabtu"},   // Saturday
		{"2024-01-07", true, "Minggu"},  // Sunday
		{"2024-01-08", false, ""},       // Monday
	}
	for _, c := range cases {
		d, _ := ParseDay(c.day)
		if got := IsWeekend(d); got != c.want {
			t.Errorf("IsWeekend(%s) = %v, want %v", c.day, got, c.want)
		}
		if got := WeekendName(d); got != c.name {
			t.Errorf("WeekendName(%s) = %q, want %q", c.day, got, c.name)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	td, err := ParseTimeOfDay("08:00:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}

	at := time.Date(2024, 3, 10, 14, 45, 12, 0, WIB)
	threshold := td.On(at)
	want := time.Date(2024, 3, 10, 8, 0, 0, 0, WIB)
	if !threshold.Equal(want) {
		t.Errorf("On = %v, want %v", threshold, want)
	}

	if _, err := ParseTimeOfDay("8am"); err == nil {
		t.Error("ParseTimeOfDay accepted invalid input")
	}
}

func TestFormatWorkDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0j 0m"},
		{7*time.Hour + 30*time.Minute, "7j 30m"},
		{8*time.Hour + 59*time.Second, "8j 0m"},
		{-time.Hour, "0j 0m"},
		{26 * time.Hour, "26j 0m"},
	}
	for _, c := range cases {
		if got := FormatWorkDuration(c.d); got != c.want {
			t.Errorf("FormatWorkDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestParseWorkDuration(t *testing.T) {
	d, ok := ParseWorkDuration("7j 30m")
	if !ok || d != 7*time.Hour+30*time.Minute {
		t.Errorf("ParseWorkDuration(\"7j 30m\") = %v, %v", d, ok)
	}

	if _, ok := ParseWorkDuration("seven hours"); ok {
		t.Error("ParseWorkDuration accepted invalid input")
	}

	// Minutes survive a round trip without loss
	orig := 9*time.Hour + 41*time.Minute
	back, ok := ParseWorkDuration(FormatWorkDuration(orig))
	if !ok || back != orig {
		t.Errorf("round trip = %v, want %v", back, orig)
	}
}
