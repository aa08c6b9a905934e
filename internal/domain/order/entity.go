package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTotal      = errors.New("order total cannot be negative")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Order aggregates the reservations and product line items committed from
// one cart. Status follows the lattice in types.go; the reconciler is the
// only writer after checkout.
type Order struct {
	id          uuid.UUID
	userID      uuid.UUID
	totalCents  int64
	status      Status
	method      Method
	externalID  *string // gateway transaction id
	expiresAt   *time.Time
	refundCents *int64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOrder(
	id, userID uuid.UUID,
	totalCents int64,
	status Status,
	method Method,
	expiresAt *time.Time,
	now time.Time,
) (*Order, error) {
	if totalCents < 0 {
		return nil, ErrInvalidTotal
	}

	return &Order{
		id:         id,
		userID:     userID,
		totalCents: totalCents,
		status:     status,
		method:     method,
		expiresAt:  expiresAt,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	totalCents int64,
	status Status,
	method Method,
	externalID *string,
	expiresAt *time.Time,
	refundCents *int64,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:          id,
		userID:      userID,
		totalCents:  totalCents,
		status:      status,
		method:      method,
		externalID:  externalID,
		expiresAt:   expiresAt,
		refundCents: refundCents,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Transition applies the lattice. Re-applying the current status is an
// idempotent no-op so webhook replays stay harmless.
func (o *Order) Transition(next Status) error {
	if o.status == next {
		return nil
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	return nil
}

// PaymentExpired reports whether an unsettled order outlived its window.
func (o *Order) PaymentExpired(now time.Time) bool {
	if o.expiresAt == nil {
		return false
	}
	if o.status != StatusPending && o.status != StatusInProcess {
		return false
	}
	return now.After(*o.expiresAt)
}

func (o *Order) AttachTransaction(tid string) {
	o.externalID = &tid
}

func (o *Order) RecordRefund(cents int64) {
	o.refundCents = &cents
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) UserID() uuid.UUID      { return o.userID }
func (o *Order) TotalCents() int64      { return o.totalCents }
func (o *Order) Status() Status         { return o.status }
func (o *Order) Method() Method         { return o.method }
func (o *Order) ExternalID() *string    { return o.externalID }
func (o *Order) ExpiresAt() *time.Time  { return o.expiresAt }
func (o *Order) RefundCents() *int64    { return o.refundCents }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) UpdatedAt() time.Time   { return o.updatedAt }
