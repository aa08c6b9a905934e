package commands

import (
	"context"
	"log/slog"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errs.New("order not found")
	ErrNoTransaction     = errs.New("order has no gateway transaction")
	ErrOrderNotExpired   = errs.New("order payment window has not elapsed")
	ErrRefundNotAllowed  = errs.New("order is not refundable")
	ErrCaptureNotAllowed = errs.New("order is not capturable")
)

type PaymentCommands interface {
	CheckStatus(ctx context.Context, orderID uuid.UUID) (order.Status, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	CancelExpiredOrder(ctx context.Context, orderID uuid.UUID) error
	CapturePayment(ctx context.Context, orderID uuid.UUID) error
	Refund(ctx context.Context, actor *identity.Principal, orderID uuid.UUID, reason string) error
	CancelCashOrder(ctx context.Context, actor *identity.Principal, orderID uuid.UUID, reason string) error
}

type paymentUseCaseImpl struct {
	uow           shared.UnitOfWork
	gateway       gateway.Client
	clock         clock.Clock
	webhookSecret string
}

func NewPaymentUseCase(uow shared.UnitOfWork, gw gateway.Client, clk clock.Clock, webhookSecret string) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, gateway: gw, clock: clk, webhookSecret: webhookSecret}
}

// CheckStatus polls the gateway by stored transaction id and reconciles the
// local order. The gateway call runs outside the transaction so row locks
// are never held across a network round trip.
func (p *paymentUseCaseImpl) CheckStatus(ctx context.Context, orderID uuid.UUID) (order.Status, error) {
	var tid string
	err := p.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.ExternalID() == nil {
			return ErrNoTransaction
		}
		tid = *o.ExternalID()
		return nil
	})
	if err != nil {
		return "", err
	}

	txn, err := p.gateway.GetTransaction(ctx, tid)
	if err != nil {
		return "", errs.Mark(err, errs.ErrGateway)
	}
	next, err := gateway.MapStatus(txn.Status)
	if err != nil {
		return "", err
	}

	var final order.Status
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := p.applyStatus(ctx, tx, o, next); err != nil {
			return err
		}
		final = o.Status()
		return nil
	})
	if err != nil {
		return "", err
	}
	return final, nil
}

// HandleWebhook applies one gateway delivery. The signature gate runs before
// anything touches the database; the event journal makes replays a recorded
// no-op.
func (p *paymentUseCaseImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !gateway.VerifySignature(p.webhookSecret, payload, signature) {
		return errs.ErrUnauthorized
	}

	ev, err := gateway.ParseEvent(payload)
	if err != nil {
		return err
	}
	next, err := gateway.MapStatus(ev.Status)
	if err != nil {
		return err
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.WebhookEvents().TryInsert(ctx, ev.EventID, ev.TransactionID); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrAlreadyProcessed
			}
			return err
		}

		o, err := tx.Orders().LockByExternalID(ctx, ev.TransactionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return p.applyStatus(ctx, tx, o, next)
	})
}

// CancelExpiredOrder enforces the server-authoritative payment window. It is
// safe to race a late webhook: a settled or terminal order is left alone,
// whichever side reached a final state first wins.
func (p *paymentUseCaseImpl) CancelExpiredOrder(ctx context.Context, orderID uuid.UUID) error {
	now := p.clock.Now()

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if o.Status() != order.StatusPending && o.Status() != order.StatusInProcess {
			return nil
		}
		if !o.PaymentExpired(now) {
			return ErrOrderNotExpired
		}

		if err := p.applyStatus(ctx, tx, o, order.StatusCancelled); err != nil {
			return err
		}
		// Residual holds from the same session no longer have an order to
		// settle them.
		_, err = tx.Holds().DeleteByUser(ctx, o.UserID())
		return err
	})
}

// CapturePayment settles a card pre-authorization. Valid only from
// authorized; anything else is an invalid-state error, not a retry.
func (p *paymentUseCaseImpl) CapturePayment(ctx context.Context, orderID uuid.UUID) error {
	var tid string
	var amount int64
	err := p.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status() != order.StatusAuthorized || o.Method() != order.MethodCard {
			return errs.Mark(ErrCaptureNotAllowed, errs.ErrInvalidState)
		}
		if o.ExternalID() == nil {
			return ErrNoTransaction
		}
		tid = *o.ExternalID()
		amount = o.TotalCents()
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := p.gateway.Capture(ctx, tid, amount); err != nil {
		return errs.Mark(err, errs.ErrGateway)
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status() != order.StatusAuthorized {
			return errs.Mark(ErrCaptureNotAllowed, errs.ErrInvalidState)
		}
		return p.applyStatus(ctx, tx, o, order.StatusPaid)
	})
}

// Refund reverses a settled pix or card payment through the gateway. Cash
// orders go through CancelCashOrder instead.
func (p *paymentUseCaseImpl) Refund(ctx context.Context, actor *identity.Principal, orderID uuid.UUID, reason string) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}

	var tid string
	var amount int64
	err := p.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status() != order.StatusPaid || !o.Method().Refundable() {
			return errs.Mark(ErrRefundNotAllowed, errs.ErrInvalidState)
		}
		if o.ExternalID() == nil {
			return ErrNoTransaction
		}
		tid = *o.ExternalID()
		amount = o.TotalCents()
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := p.gateway.Refund(ctx, tid, gateway.RefundRequest{AmountCents: amount, Reason: reason}); err != nil {
		return errs.Mark(err, errs.ErrGateway)
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status() != order.StatusPaid {
			return errs.Mark(ErrRefundNotAllowed, errs.ErrInvalidState)
		}
		if err := tx.Orders().SetRefund(ctx, orderID, amount, order.StatusPartialRefunded); err != nil {
			return err
		}
		return tx.Audit().Record(ctx, actor.UserID, "order.refund", &orderID, reason)
	})
}

// CancelCashOrder is the admin path for reversing a cash sale: no gateway
// involved, so the action is audited with actor and reason.
func (p *paymentUseCaseImpl) CancelCashOrder(ctx context.Context, actor *identity.Principal, orderID uuid.UUID, reason string) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().LockByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status() != order.StatusPaid || o.Method() != order.MethodCash {
			return errs.ErrInvalidState
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, order.StatusRecused); err != nil {
			return err
		}
		if _, err := tx.Bookings().UpdateStatusByOrder(ctx, orderID, booking.StatusPaid, booking.StatusCancelled); err != nil {
			return err
		}
		if err := restoreOrderStock(ctx, tx, orderID); err != nil {
			return err
		}
		return tx.Audit().Record(ctx, actor.UserID, "order.cancel_cash", &orderID, reason)
	})
}

// applyStatus moves the locked order along the monotonic lattice and runs
// the reservation and stock side effects of the new state. Re-applying the
// current status is a no-op; a transition the lattice forbids (a late
// webhook for an already settled order) is logged and ignored rather than
// failed, because the provider will retry on error.
func (p *paymentUseCaseImpl) applyStatus(ctx context.Context, tx shared.Tx, o *order.Order, next order.Status) error {
	if o.Status() == next {
		return nil
	}
	if !o.Status().CanTransitionTo(next) {
		slog.Warn("ignoring stale gateway status",
			"order_id", o.ID(), "current", o.Status().String(), "incoming", next.String())
		return nil
	}

	if err := o.Transition(next); err != nil {
		return err
	}
	if err := tx.Orders().UpdateStatus(ctx, o.ID(), next); err != nil {
		return err
	}

	switch next {
	case order.StatusPaid:
		_, err := tx.Bookings().UpdateStatusByOrder(ctx, o.ID(), booking.StatusInProcess, booking.StatusPaid)
		return err
	case order.StatusCancelled, order.StatusRecused:
		if _, err := tx.Bookings().UpdateStatusByOrder(ctx, o.ID(), booking.StatusInProcess, booking.StatusCancelled); err != nil {
			return err
		}
		return restoreOrderStock(ctx, tx, o.ID())
	default:
		return nil
	}
}

func restoreOrderStock(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error {
	items, err := tx.Orders().ListItems(ctx, orderID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := tx.Products().RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
