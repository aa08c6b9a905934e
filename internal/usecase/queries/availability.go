package queries

import (
	"context"
	"time"

	"praxis-booking/internal/domain/availability"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrResourceNotFound = errs.New("resource not found")

type AvailabilityQueries interface {
	GetAvailability(ctx context.Context, resourceID uuid.UUID, date time.Time, quantity int) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, clock: clk}
}

// GetAvailability returns the hour table for one resource and date. The
// read runs in a read-only transaction so schedules, blocks, reservations
// and holds come from one snapshot.
func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, resourceID uuid.UUID, date time.Time, quantity int) (*AvailabilityView, error) {
	now := q.clock.Now()

	var view *AvailabilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return err
		}

		table, err := shared.DayTable(ctx, tx, res, date, now, quantity, nil)
		if err != nil {
			return err
		}

		view = &AvailabilityView{
			ResourceID: resourceID,
			Date:       date.Format("2006-01-02"),
			Capacity:   res.Capacity(),
			Slots:      make([]SlotView, len(table)),
		}
		for i, s := range table {
			view.Slots[i] = SlotView{
				Hour:              s.Hour,
				Start:             s.Start,
				Available:         s.Available,
				AvailableQuantity: s.AvailableQuantity,
				Reason:            string(s.Reason),
			}
			if s.Available {
				view.Slots[i].ConsecutiveUntil = availability.ConsecutiveFrom(table, s.Hour)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
