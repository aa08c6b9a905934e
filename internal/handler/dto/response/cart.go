package response

import (
	"time"

	"github.com/google/uuid"
)

type AddToCartResponse struct {
	HoldID uuid.UUID `json:"hold_id"`
}

type ClearCartResponse struct {
	Removed int64 `json:"removed"`
}

type HoldResponse struct {
	ID         uuid.UUID  `json:"id"`
	ItemType   string     `json:"item_type"`
	ItemID     uuid.UUID  `json:"item_id"`
	Quantity   int        `json:"quantity"`
	PriceCents int64      `json:"price_cents"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}
