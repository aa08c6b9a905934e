package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type SlotView struct {
	Hour              int       `json:"hour"`
	Start             time.Time `json:"start"`
	Available         bool      `json:"available"`
	AvailableQuantity int       `json:"available_quantity"`
	Reason            string    `json:"reason,omitempty"`
	// ConsecutiveUntil is the last hour (exclusive) reachable from this
	// slot without a gap; end-time pickers use it to limit choices.
	ConsecutiveUntil int `json:"consecutive_until,omitempty"`
}

type AvailabilityView struct {
	ResourceID uuid.UUID  `json:"resource_id"`
	Date       string     `json:"date"`
	Capacity   int        `json:"capacity"`
	Slots      []SlotView `json:"slots"`
}

type HoldView struct {
	ID         uuid.UUID  `json:"id"`
	ItemType   string     `json:"item_type"`
	ItemID     uuid.UUID  `json:"item_id"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"price_cents"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

type OrderItemView struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
}

type OrderView struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	TotalCents   int64             `json:"total_cents"`
	Status       string            `json:"status"`
	Method       string            `json:"method"`
	ExternalID   *string           `json:"external_id,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"`
	RefundCents  *int64            `json:"refund_cents,omitempty"`
	Items        []OrderItemView   `json:"items,omitempty"`
	Reservations []ReservationView `json:"reservations,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	ResourceID uuid.UUID `json:"resource_id"`
	OrderID    uuid.UUID `json:"order_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
}
