package shared

import (
	"context"
	"time"

	"praxis-booking/internal/domain/availability"
	"praxis-booking/internal/domain/resource"

	"github.com/google/uuid"
)

// DayTable assembles the calculator input for one resource and one date from
// the repositories of the current transaction and returns the hour table.
// excludeHold removes the caller's own hold from the aggregation so quantity
// updates do not double-count themselves.
func DayTable(
	ctx context.Context,
	tx Tx,
	res *resource.Resource,
	date time.Time,
	now time.Time,
	requestedQty int,
	excludeHold *uuid.UUID,
) ([]availability.HourSlot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var entries []resource.ScheduleEntry
	if res.OpenOn(dayStart.Weekday()) {
		var err error
		entries, err = tx.Resources().ScheduleEntries(ctx, res.ID(), dayStart.Weekday())
		if err != nil {
			return nil, err
		}
	}

	blocks, err := tx.Blocks().Overlapping(ctx, res.ID(), dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	reservations, err := tx.Bookings().ActiveOverlapping(ctx, res.ID(), dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	holds, err := tx.Holds().ActiveOverlapping(ctx, res.ID(), dayStart, dayEnd, now)
	if err != nil {
		return nil, err
	}

	in := availability.Input{
		Capacity: res.Capacity(),
		Date:     dayStart,
		Now:      now,
		Entries:  entries,
	}
	for _, b := range blocks {
		in.Blocks = append(in.Blocks, availability.Interval{Start: b.Start, End: b.End})
	}
	for _, r := range reservations {
		in.Commitments = append(in.Commitments, availability.Commitment{
			Start:    r.Start(),
			End:      r.End(),
			Quantity: r.Quantity(),
		})
	}
	for _, h := range holds {
		if excludeHold != nil && h.ID == *excludeHold {
			continue
		}
		if h.Start == nil || h.End == nil {
			continue
		}
		in.Commitments = append(in.Commitments, availability.Commitment{
			Start:    *h.Start,
			End:      *h.End,
			Quantity: h.Quantity,
		})
	}

	return availability.Table(in, requestedQty), nil
}

// WindowAvailable checks a booking window that may cross midnight by
// evaluating each touched day's table.
func WindowAvailable(
	ctx context.Context,
	tx Tx,
	res *resource.Resource,
	start, end time.Time,
	now time.Time,
	requestedQty int,
	excludeHold *uuid.UUID,
) (bool, error) {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day.Before(end) {
		table, err := DayTable(ctx, tx, res, day, now, requestedQty, excludeHold)
		if err != nil {
			return false, err
		}
		if !availability.WindowAvailable(table, start, end) {
			return false, nil
		}
		day = day.AddDate(0, 0, 1)
	}
	return true, nil
}
