package shared

import (
	"context"
	"time"

	"praxis-booking/internal/domain/booking"
	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Blocks() BlockRepository
	Holds() HoldRepository
	Bookings() BookingRepository
	Orders() OrderRepository
	Products() ProductRepository
	WebhookEvents() WebhookEventRepository
	Audit() AuditRepository
	DB() db.DBTX
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// LockByID takes a row lock so capacity aggregation and the following
	// insert happen under mutual exclusion.
	LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	ScheduleEntries(ctx context.Context, resourceID uuid.UUID, weekday time.Weekday) ([]resource.ScheduleEntry, error)
}

type BlockRepository interface {
	Create(ctx context.Context, b *resource.Block) error
	Delete(ctx context.Context, id uuid.UUID) error
	Overlapping(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*resource.Block, error)
}

type HoldRepository interface {
	Create(ctx context.Context, h *hold.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	ActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]*hold.Hold, error)
	// ActiveOverlapping excludes expired holds even when they are still
	// physically present.
	ActiveOverlapping(ctx context.Context, itemID uuid.UUID, from, to time.Time, now time.Time) ([]*hold.Hold, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, priceCents int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, r *booking.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*booking.Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Reservation, error)
	// ActiveOverlapping returns reservations whose status still consumes
	// capacity and whose window overlaps [from, to).
	ActiveOverlapping(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	UpdateStatusByOrder(ctx context.Context, orderID uuid.UUID, from, to booking.Status) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	LockByExternalID(ctx context.Context, externalID string) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error
	SetExternalID(ctx context.Context, id uuid.UUID, externalID string) error
	SetRefund(ctx context.Context, id uuid.UUID, refundCents int64, status order.Status) error
	AddItem(ctx context.Context, item OrderItem) error
	ListItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	// ExpiredUnsettled lists pending/in_process orders past their payment
	// window, for the sweeper.
	ExpiredUnsettled(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	// DecrementStock fails with KindConflict when stock would go negative.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type WebhookEventRepository interface {
	// TryInsert fails with KindDuplicateKey when the event was seen before.
	TryInsert(ctx context.Context, eventID, externalID string) error
}

type AuditRepository interface {
	Record(ctx context.Context, actorID uuid.UUID, action string, targetID *uuid.UUID, reason string) error
}
