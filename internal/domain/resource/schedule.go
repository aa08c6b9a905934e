package resource

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidScheduleEntry = errors.New("schedule entry start must be before end")

// TimeOfDay is minutes from midnight. Schedule granularity never goes below
// a minute, so an int keeps comparisons trivial.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Weekdays is an open-day bitmask, bit n = time.Weekday n (Sunday = 0).
type Weekdays uint8

func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

func (w Weekdays) List() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// ScheduleEntry is one recurring bookable window for a weekday. A resource
// may carry several entries per weekday (split shifts).
type ScheduleEntry struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Weekday    time.Weekday
	Start      TimeOfDay
	End        TimeOfDay
}

func NewScheduleEntry(resourceID uuid.UUID, weekday time.Weekday, start, end TimeOfDay) (ScheduleEntry, error) {
	if start >= end {
		return ScheduleEntry{}, ErrInvalidScheduleEntry
	}
	return ScheduleEntry{
		ID:         uuid.New(),
		ResourceID: resourceID,
		Weekday:    weekday,
		Start:      start,
		End:        end,
	}, nil
}

// CoversHour reports whether the whole hour [h:00, h+1:00) sits inside the
// entry's window.
func (e ScheduleEntry) CoversHour(hour int) bool {
	return int(e.Start) <= hour*60 && int(e.End) >= (hour+1)*60
}
