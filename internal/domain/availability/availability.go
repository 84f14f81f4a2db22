// Package availability projects a tutor's recurring weekly template onto a
// calendar date and produces bookable one-hour slots.
package availability

import (
	"errors"
	"sort"
	"time"

	"tutorin/internal/pkg/wib"
)

const (
	SlotLength = time.Hour
	// Slots starting closer than this to "now" are not offered.
	LeadTime = 2 * time.Hour
)

var (
	ErrInvalidRange   = errors.New("range start must be before end")
	ErrInvalidWeekday = errors.New("day of week must be between 0 and 6")
	ErrOverlappingDay = errors.New("ranges for the same day must not overlap")
)

// Range is one recurring weekly window, minutes since local midnight.
type Range struct {
	Weekday     int
	StartMinute int
	EndMinute   int
}

type Template []Range

func (t Template) Validate() error {
	for _, r := range t {
		if r.Weekday < 0 || r.Weekday > 6 {
			return ErrInvalidWeekday
		}
		if r.StartMinute >= r.EndMinute {
			return ErrInvalidRange
		}
	}
	byDay := make(map[int][]Range)
	for _, r := range t {
		byDay[r.Weekday] = append(byDay[r.Weekday], r)
	}
	for _, day := range byDay {
		sort.Slice(day, func(i, j int) bool { return day[i].StartMinute < day[j].StartMinute })
		for i := 1; i < len(day); i++ {
			if day[i].StartMinute < day[i-1].EndMinute {
				return ErrOverlappingDay
			}
		}
	}
	return nil
}

// forDay returns the template ranges matching a weekday, ordered by start.
func (t Template) forDay(weekday int) []Range {
	var out []Range
	for _, r := range t {
		if r.Weekday == weekday {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out
}

// Busy is an occupied interval, half-open [Start, End).
type Busy struct {
	Start time.Time
	End   time.Time
}

// Overlaps applies the half-open interval test against a candidate slot.
func (b Busy) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

type Slot struct {
	Start time.Time
	End   time.Time
}

// Slots tiles the template ranges for the WIB calendar day of date into
// contiguous one-hour slots, drops any partial tail shorter than a full hour,
// and removes slots overlapping a busy interval. When date is today it also
// removes slots starting inside the lead-time window from now.
func Slots(tpl Template, date time.Time, busy []Busy, now time.Time) []Slot {
	weekday := int(date.In(wib.Location()).Weekday())
	isToday := wib.SameDay(date, now)
	cutoff := now.Add(LeadTime)

	var slots []Slot
	for _, r := range tpl.forDay(weekday) {
		for m := r.StartMinute; m+60 <= r.EndMinute; m += 60 {
			start := wib.At(date, m)
			end := start.Add(SlotLength)

			if isToday && start.Before(cutoff) {
				continue
			}
			if overlapsAny(busy, start, end) {
				continue
			}
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	return slots
}

func overlapsAny(busy []Busy, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
