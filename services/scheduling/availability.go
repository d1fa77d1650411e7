package scheduling

import (
	"sort"
	"strings"
	"time"

	"theray/models"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Catalog indexes a provider's recurring weekly windows by weekday.
type Catalog struct {
	windows map[time.Weekday][]Interval
}

// NewCatalog builds a catalog, skipping windows with an unknown day or a
// malformed interval.
func NewCatalog(windows []models.AvailabilityWindow) *Catalog {
	c := &Catalog{windows: make(map[time.Weekday][]Interval)}
	for _, w := range windows {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(w.Day))]
		if !ok {
			continue
		}
		iv, err := NewInterval(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		c.windows[day] = append(c.windows[day], iv)
	}
	for day := range c.windows {
		sortIntervals(c.windows[day])
	}
	return c
}

// Empty reports whether the provider declared no usable windows at all.
func (c *Catalog) Empty() bool {
	return len(c.windows) == 0
}

// WindowsOn returns the windows that apply to the weekday of date, sorted by start.
func (c *Catalog) WindowsOn(date time.Time) []Interval {
	src := c.windows[date.Weekday()]
	out := make([]Interval, len(src))
	copy(out, src)
	return out
}

// Covers reports whether iv fits inside a single window on date's weekday.
func (c *Catalog) Covers(date time.Time, iv Interval) bool {
	for _, w := range c.windows[date.Weekday()] {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}

// FreeIntervals subtracts the booked intervals from the day's windows.
func (c *Catalog) FreeIntervals(date time.Time, booked []Interval) []Interval {
	taken := make([]Interval, len(booked))
	copy(taken, booked)
	sortIntervals(taken)

	var free []Interval
	for _, w := range c.windows[date.Weekday()] {
		cur := w.Start
		for _, b := range taken {
			if b.End <= cur || b.Start >= w.End {
				continue
			}
			if b.Start > cur {
				free = append(free, Interval{Start: cur, End: b.Start})
			}
			if b.End > cur {
				cur = b.End
			}
			if cur >= w.End {
				break
			}
		}
		if cur < w.End {
			free = append(free, Interval{Start: cur, End: w.End})
		}
	}
	return free
}

func sortIntervals(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}
