package commands

import (
	"context"
	"log/slog"
	"time"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrOrderExists = errs.New("order id already used")

type CheckoutInput struct {
	OrderID uuid.UUID
	Method  order.Method
	Payer   gateway.Payer
}

type CheckoutResult struct {
	OrderID        uuid.UUID
	TotalCents     int64
	Status         order.Status
	ReservationIDs []uuid.UUID
	// Transaction carries the method-specific payment artifacts (PIX QR
	// code, boleto line). Nil for cash orders.
	Transaction *gateway.Transaction
}

type CheckoutCommands interface {
	CommitCheckout(ctx context.Context, principal *identity.Principal, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway gateway.Client
	clock   clock.Clock
	cfg     config.BookingConfig
}

func NewCheckoutUseCase(uow shared.UnitOfWork, gw gateway.Client, clk clock.Clock, cfg config.BookingConfig) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, gateway: gw, clock: clk, cfg: cfg}
}

// CommitCheckout promotes the caller's cart into an order with durable
// reservations and product lines. Every hold is re-validated under the
// resource lock inside one transaction; any stale hold aborts the whole
// commit. The gateway call happens after commit so a provider outage never
// leaves half-written reservations; the order stays recoverable via a
// status poll.
func (c *checkoutUseCaseImpl) CommitCheckout(ctx context.Context, principal *identity.Principal, in CheckoutInput) (*CheckoutResult, error) {
	if in.Method == order.MethodCash && !principal.IsAdmin() {
		return nil, errs.ErrUnauthorized
	}
	now := c.clock.Now()

	var result CheckoutResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = CheckoutResult{OrderID: in.OrderID}

		holds, err := tx.Holds().ActiveByUser(ctx, principal.UserID, now)
		if err != nil {
			return err
		}
		if len(holds) == 0 {
			return errs.ErrEmptyCart
		}

		var total int64
		for _, h := range holds {
			total += h.PriceCents
		}

		orderStatus := order.StatusInProcess
		reservationStatus := booking.StatusInProcess
		if in.Method == order.MethodCash {
			orderStatus = order.StatusPaid
			reservationStatus = booking.StatusPaid
		}

		expiresAt := orderExpiry(in.Method, c.cfg, now)
		o, err := order.NewOrder(in.OrderID, principal.UserID, total, orderStatus, in.Method, expiresAt, now)
		if err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrOrderExists
			}
			return err
		}

		for _, h := range holds {
			if h.ItemType.Bookable() {
				res, err := tx.Resources().LockByID(ctx, h.ItemID)
				if err != nil {
					return err
				}
				ok, err := shared.WindowAvailable(ctx, tx, res, *h.Start, *h.End, now, h.Quantity, &h.ID)
				if err != nil {
					return err
				}
				if !ok {
					return errs.ErrSlotNoLongerAvailable
				}

				r, err := booking.NewReservation(h.ItemID, principal.UserID, in.OrderID,
					*h.Start, *h.End, h.Quantity, reservationStatus, h.PriceCents, now)
				if err != nil {
					return err
				}
				if err := tx.Bookings().Create(ctx, r); err != nil {
					return err
				}
				result.ReservationIDs = append(result.ReservationIDs, r.ID())
				continue
			}

			if err := tx.Products().DecrementStock(ctx, h.ItemID, h.Quantity); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.ErrSlotNoLongerAvailable
				}
				return err
			}
			item := shared.OrderItem{
				ID:         uuid.New(),
				OrderID:    in.OrderID,
				ProductID:  h.ItemID,
				Quantity:   h.Quantity,
				PriceCents: h.PriceCents,
			}
			if err := tx.Orders().AddItem(ctx, item); err != nil {
				return err
			}
		}

		if _, err := tx.Holds().DeleteByUser(ctx, principal.UserID); err != nil {
			return err
		}

		result.TotalCents = total
		result.Status = orderStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Method == order.MethodCash {
		return &result, nil
	}

	txn, err := c.gateway.CreateTransaction(ctx, gateway.CreateRequest{
		Method:      in.Method.String(),
		AmountCents: result.TotalCents,
		Payer:       in.Payer,
		ReferenceID: in.OrderID.String(),
	})
	if err != nil {
		slog.Error("gateway transaction creation failed, order awaits reconciliation",
			"order_id", in.OrderID, "error", err.Error())
		return &result, errs.Mark(err, errs.ErrGateway)
	}

	if err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().SetExternalID(ctx, in.OrderID, txn.ID)
	}); err != nil {
		return &result, err
	}

	result.Transaction = txn
	return &result, nil
}

// PIX payments expire 20 minutes after order creation; the other methods
// resolve through the gateway on their own schedule.
func orderExpiry(m order.Method, cfg config.BookingConfig, now time.Time) *time.Time {
	if m != order.MethodPix {
		return nil
	}
	t := now.Add(cfg.PixExpiry)
	return &t
}
