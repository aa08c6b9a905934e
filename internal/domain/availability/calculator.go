// Package availability computes the per-hour availability table for one
// resource and one date. It is the single source of truth for slot
// availability: cart validation, checkout re-validation and the public
// availability endpoint all feed their inputs through Table.
package availability

import (
	"time"

	"praxis-booking/internal/domain/resource"
)

type Reason string

const (
	ReasonNone        Reason = ""
	ReasonClosed      Reason = "closed"
	ReasonBlocked     Reason = "blocked"
	ReasonPast        Reason = "past"
	ReasonFullyBooked Reason = "fully_booked"
)

// Commitment is capacity consumed over a window: a non-cancelled
// reservation or an unexpired cart hold.
type Commitment struct {
	Start    time.Time
	End      time.Time
	Quantity int
}

type Interval struct {
	Start time.Time
	End   time.Time
}

type HourSlot struct {
	Hour              int
	Start             time.Time
	Available         bool
	AvailableQuantity int
	Reason            Reason
}

type Input struct {
	Capacity    int
	Date        time.Time // midnight, resource-local
	Now         time.Time
	Entries     []resource.ScheduleEntry // schedule entries for the date's weekday
	Blocks      []Interval
	Commitments []Commitment
}

// Table returns one HourSlot per hour of the day. An hour is available iff
// it is in the future, covered by a schedule entry, untouched by a manual
// block, and has at least requestedQty units of remaining capacity.
func Table(in Input, requestedQty int) []HourSlot {
	if requestedQty < 1 {
		requestedQty = 1
	}

	slots := make([]HourSlot, 24)
	for h := range 24 {
		hourStart := in.Date.Add(time.Duration(h) * time.Hour)
		hourEnd := hourStart.Add(time.Hour)
		slot := HourSlot{Hour: h, Start: hourStart}

		switch {
		case hourStart.Before(in.Now):
			slot.Reason = ReasonPast
		case !covered(in.Entries, h):
			slot.Reason = ReasonClosed
		case blocked(in.Blocks, hourStart, hourEnd):
			slot.Reason = ReasonBlocked
		default:
			remaining := in.Capacity - committed(in.Commitments, hourStart, hourEnd)
			if remaining < 0 {
				remaining = 0
			}
			slot.AvailableQuantity = remaining
			if remaining >= requestedQty {
				slot.Available = true
			} else {
				slot.Reason = ReasonFullyBooked
			}
		}

		slots[h] = slot
	}
	return slots
}

// WindowAvailable checks every hour of [start, end) against the table.
// Used by cart adds and checkout re-validation.
func WindowAvailable(table []HourSlot, start, end time.Time) bool {
	for _, s := range table {
		hourEnd := s.Start.Add(time.Hour)
		if s.Start.Before(end) && start.Before(hourEnd) && !s.Available {
			return false
		}
	}
	return true
}

// ConsecutiveFrom returns the latest hour (exclusive) reachable from
// startHour without an unavailable gap. Equipment end-time choices are
// restricted to this run; a break in availability ends the run.
func ConsecutiveFrom(table []HourSlot, startHour int) int {
	if startHour < 0 || startHour >= len(table) || !table[startHour].Available {
		return startHour
	}
	end := startHour
	for end < len(table) && table[end].Available {
		end++
	}
	return end
}

// Multiple entries covering the same hour are unioned, not double-counted.
func covered(entries []resource.ScheduleEntry, hour int) bool {
	for _, e := range entries {
		if e.CoversHour(hour) {
			return true
		}
	}
	return false
}

func blocked(blocks []Interval, start, end time.Time) bool {
	for _, b := range blocks {
		if b.Start.Before(end) && start.Before(b.End) {
			return true
		}
	}
	return false
}

func committed(commitments []Commitment, start, end time.Time) int {
	total := 0
	for _, c := range commitments {
		if c.Start.Before(end) && start.Before(c.End) {
			total += c.Quantity
		}
	}
	return total
}
