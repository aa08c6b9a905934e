package commands

import (
	"context"
	"time"

	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound      = errs.New("item not found")
	ErrItemInactive      = errs.New("item is not available for booking")
	ErrHoldNotFound      = errs.New("cart hold not found")
	ErrHoldNotOwned      = errs.New("cart hold belongs to another user")
	ErrInsufficientStock = errs.New("insufficient product stock")
)

type AddToCartInput struct {
	ItemType hold.ItemType
	ItemID   uuid.UUID
	Quantity int
	Start    *time.Time
	End      *time.Time
	BranchID *uuid.UUID
}

type CartCommands interface {
	AddToCart(ctx context.Context, userID uuid.UUID, in AddToCartInput) (uuid.UUID, error)
	UpdateCart(ctx context.Context, userID, holdID uuid.UUID, quantity int) error
	RemoveFromCart(ctx context.Context, userID, holdID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewCartUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) CartCommands {
	return &cartUseCaseImpl{uow: uow, clock: clk, cfg: cfg}
}

// AddToCart validates capacity under the resource row lock and creates a
// time-boxed hold. The lock serializes concurrent adds on the same resource
// so the aggregate check and the insert are atomic.
func (c *cartUseCaseImpl) AddToCart(ctx context.Context, userID uuid.UUID, in AddToCartInput) (uuid.UUID, error) {
	now := c.clock.Now()

	var holdID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		priceCents, err := c.validateItem(ctx, tx, in, now, nil)
		if err != nil {
			return err
		}

		h, err := hold.New(userID, in.ItemType, in.ItemID, in.Quantity, priceCents,
			in.Start, in.End, in.BranchID, now, c.cfg.HoldTTL)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidRange)
		}

		if err := tx.Holds().Create(ctx, h); err != nil {
			return err
		}
		holdID = h.ID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return holdID, nil
}

// UpdateCart changes a hold's quantity, re-running the capacity check with
// the hold's own consumption excluded.
func (c *cartUseCaseImpl) UpdateCart(ctx context.Context, userID, holdID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errs.Mark(hold.ErrInvalidQuantity, errs.ErrInvalidRange)
	}
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByID(ctx, holdID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrHoldNotFound
			}
			return err
		}
		if h.UserID != userID {
			return ErrHoldNotOwned
		}
		if h.Expired(now) {
			return ErrHoldNotFound
		}

		in := AddToCartInput{
			ItemType: h.ItemType,
			ItemID:   h.ItemID,
			Quantity: quantity,
			Start:    h.Start,
			End:      h.End,
			BranchID: h.BranchID,
		}
		priceCents, err := c.validateItem(ctx, tx, in, now, &holdID)
		if err != nil {
			return err
		}

		return tx.Holds().UpdateQuantity(ctx, holdID, quantity, priceCents)
	})
}

func (c *cartUseCaseImpl) RemoveFromCart(ctx context.Context, userID, holdID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByID(ctx, holdID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrHoldNotFound
			}
			return err
		}
		if h.UserID != userID {
			return ErrHoldNotOwned
		}
		return tx.Holds().Delete(ctx, holdID)
	})
}

func (c *cartUseCaseImpl) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	var removed int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		removed, err = tx.Holds().DeleteByUser(ctx, userID)
		return err
	})
	return removed, err
}

// validateItem checks the requested claim against current inventory and
// returns the line price. Bookable items go through the availability table
// under the resource lock; products only need a stock-level read since the
// real decrement happens at checkout.
func (c *cartUseCaseImpl) validateItem(
	ctx context.Context,
	tx shared.Tx,
	in AddToCartInput,
	now time.Time,
	excludeHold *uuid.UUID,
) (int64, error) {
	if in.Quantity < 1 {
		return 0, errs.Mark(hold.ErrInvalidQuantity, errs.ErrInvalidRange)
	}

	if !in.ItemType.Bookable() {
		p, err := tx.Products().FindByID(ctx, in.ItemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return 0, ErrItemNotFound
			}
			return 0, err
		}
		if !p.Active {
			return 0, ErrItemInactive
		}
		if p.StockQuantity < in.Quantity {
			return 0, errs.Mark(ErrInsufficientStock, errs.ErrCapacityExceeded)
		}
		return p.PriceCents * int64(in.Quantity), nil
	}

	if in.Start == nil || in.End == nil {
		return 0, errs.Mark(hold.ErrMissingWindow, errs.ErrInvalidRange)
	}
	if err := validateWindow(*in.Start, *in.End, now); err != nil {
		return 0, err
	}

	res, err := tx.Resources().LockByID(ctx, in.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}
	if !res.Active() {
		return 0, ErrItemInactive
	}

	ok, err := shared.WindowAvailable(ctx, tx, res, *in.Start, *in.End, now, in.Quantity, excludeHold)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.ErrCapacityExceeded
	}

	return res.PriceFor(*in.Start, *in.End, in.Quantity), nil
}

// Booking windows are hour-granular and must not start in the past.
func validateWindow(start, end, now time.Time) error {
	if !start.Before(end) {
		return errs.ErrInvalidRange
	}
	if start.Minute() != 0 || start.Second() != 0 || end.Minute() != 0 || end.Second() != 0 {
		return errs.ErrInvalidRange
	}
	if start.Before(now) {
		return errs.ErrInvalidRange
	}
	return nil
}
