package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used on the wire.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Clock is a wall-clock time of day in minutes from midnight.
type Clock int

// ParseClock accepts "H:MM" or "HH:MM" between 00:00 and 23:59.
func ParseClock(s string) (Clock, error) {
	if !clockPattern.MatchString(s) {
		return 0, newError(KindInvalidInterval, "time %q must be in HH:MM format", s)
	}
	hh, mm, _ := strings.Cut(s, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return Clock(h*60 + m), nil
}

// String renders the zero padded "HH:MM" form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Label renders a 12-hour form such as "9:00 AM".
func (c Clock) Label() string {
	return time.Date(2000, 1, 1, int(c)/60, int(c)%60, 0, 0, time.UTC).Format("3:04 PM")
}

// Interval is a half-open [Start, End) span of wall-clock time on one day.
type Interval struct {
	Start Clock
	End   Clock
}

// NewInterval parses both ends and rejects empty or inverted intervals.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, newError(KindInvalidInterval, "start time %s must be before end time %s", start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether the two intervals share any instant.
// Back-to-back intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether o lies entirely within i.
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// ParseDay parses a "YYYY-MM-DD" date into UTC midnight of that day.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, newError(KindInvalidInterval, "date %q must be in YYYY-MM-DD format", s)
	}
	return d, nil
}

// DayOf truncates t to UTC midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
