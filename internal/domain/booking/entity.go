package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow     = errors.New("reservation start must be before end")
	ErrInvalidQuantity   = errors.New("reservation quantity must be at least 1")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

// Reservation is the durable booking record created at checkout commit,
// always tied to an order. Once cancelled or recused it never changes.
type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	orderID    uuid.UUID
	start      time.Time
	end        time.Time
	quantity   int
	status     Status
	totalCents int64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	resourceID, userID, orderID uuid.UUID,
	start, end time.Time,
	quantity int,
	status Status,
	totalCents int64,
	now time.Time,
) (*Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return &Reservation{
		id:         uuid.New(),
		resourceID: resourceID,
		userID:     userID,
		orderID:    orderID,
		start:      start,
		end:        end,
		quantity:   quantity,
		status:     status,
		totalCents: totalCents,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id, resourceID, userID, orderID uuid.UUID,
	start, end time.Time,
	quantity int,
	status Status,
	totalCents int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		orderID:    orderID,
		start:      start,
		end:        end,
		quantity:   quantity,
		status:     status,
		totalCents: totalCents,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Transition enforces the reservation lifecycle: in_process may resolve to
// paid, cancelled or recused; paid may still be cancelled (refund, admin
// cash cancel); terminal states are frozen.
func (r *Reservation) Transition(next Status) error {
	if r.status == next {
		return nil
	}
	if r.status.Terminal() {
		return ErrInvalidTransition
	}
	if r.status == StatusPaid && next == StatusInProcess {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.start.Before(end) && start.Before(r.end)
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ResourceID() uuid.UUID { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID     { return r.userID }
func (r *Reservation) OrderID() uuid.UUID    { return r.orderID }
func (r *Reservation) Start() time.Time      { return r.start }
func (r *Reservation) End() time.Time        { return r.end }
func (r *Reservation) Quantity() int         { return r.quantity }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) TotalCents() int64     { return r.totalCents }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
