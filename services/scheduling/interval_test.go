package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "9:30", want: 570},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9", wantErr: true},
		{in: "09:00:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidInterval) {
				t.Fatalf("ParseClock(%q): expected InvalidInterval, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseClock(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestClockFormatting(t *testing.T) {
	c := Clock(9*60 + 5)
	if c.String() != "09:05" {
		t.Fatalf("expected 09:05, got %s", c.String())
	}
	if Clock(13*60+30).Label() != "1:30 PM" {
		t.Fatalf("expected 1:30 PM, got %s", Clock(13*60+30).Label())
	}
}

func TestNewIntervalRejectsEmptyAndInverted(t *testing.T) {
	for _, pair := range [][2]string{{"10:00", "10:00"}, {"11:00", "10:00"}} {
		if _, err := NewInterval(pair[0], pair[1]); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("NewInterval(%s, %s): expected InvalidInterval, got %v", pair[0], pair[1], err)
		}
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base, _ := NewInterval("09:00", "10:00")
	tests := []struct {
		start, end string
		want       bool
	}{
		{"10:00", "11:00", false},
		{"08:00", "09:00", false},
		{"09:30", "10:30", true},
		{"08:30", "09:01", true},
		{"09:15", "09:45", true},
		{"08:00", "11:00", true},
	}
	for _, tt := range tests {
		other, err := NewInterval(tt.start, tt.end)
		if err != nil {
			t.Fatalf("NewInterval: %v", err)
		}
		if got := base.Overlaps(other); got != tt.want {
			t.Fatalf("%s overlaps %s: expected %v, got %v", base, other, tt.want, got)
		}
		if got := other.Overlaps(base); got != tt.want {
			t.Fatalf("overlap must be symmetric for %s and %s", base, other)
		}
	}
}

func TestIntervalContainsAndMinutes(t *testing.T) {
	window, _ := NewInterval("09:00", "17:00")
	inside, _ := NewInterval("09:00", "10:30")
	outside, _ := NewInterval("16:30", "17:30")

	if !window.Contains(inside) {
		t.Fatal("expected window to contain 09:00-10:30")
	}
	if window.Contains(outside) {
		t.Fatal("expected window not to contain 16:30-17:30")
	}
	if inside.Minutes() != 90 {
		t.Fatalf("expected 90 minutes, got %d", inside.Minutes())
	}
	if inside.String() != "09:00-10:30" {
		t.Fatalf("unexpected String(): %s", inside.String())
	}
}

func TestParseDayAndDayOf(t *testing.T) {
	d, err := ParseDay("2030-05-06")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !d.Equal(monday) {
		t.Fatalf("expected %v, got %v", monday, d)
	}
	if _, err := ParseDay("06/05/2030"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected InvalidInterval for bad date, got %v", err)
	}

	later := time.Date(2030, 5, 6, 18, 45, 0, 0, time.UTC)
	if !DayOf(later).Equal(monday) {
		t.Fatalf("DayOf should truncate to midnight, got %v", DayOf(later))
	}
}
