package queries

import (
	"context"

	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartQueries interface {
	ListCart(ctx context.Context, userID uuid.UUID) ([]HoldView, error)
}

type cartQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCartQueries(uow shared.UnitOfWork, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{uow: uow, clock: clk}
}

// ListCart returns the caller's unexpired holds. Expired rows awaiting the
// sweeper are filtered out here, not shown with a zero countdown.
func (q *cartQueriesImpl) ListCart(ctx context.Context, userID uuid.UUID) ([]HoldView, error) {
	now := q.clock.Now()

	var views []HoldView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		holds, err := tx.Holds().ActiveByUser(ctx, userID, now)
		if err != nil {
			return err
		}
		views = make([]HoldView, len(holds))
		for i, h := range holds {
			views[i] = HoldView{
				ID:         h.ID,
				ItemType:   string(h.ItemType),
				ItemID:     h.ItemID,
				Quantity:   h.Quantity,
				PriceCents: h.PriceCents,
				Start:      h.Start,
				End:        h.End,
				ExpiresAt:  h.ExpiresAt,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
