package hold

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidWindow   = errors.New("hold window start must be before end")
	ErrMissingWindow   = errors.New("bookable holds require a time window")
	ErrInvalidItemType = errors.New("unknown item type")
)

type ItemType string

const (
	ItemRoom      ItemType = "room"
	ItemEquipment ItemType = "equipment"
	ItemProduct   ItemType = "product"
)

func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemRoom, ItemEquipment, ItemProduct:
		return ItemType(s), nil
	default:
		return "", ErrInvalidItemType
	}
}

func (t ItemType) Bookable() bool {
	return t == ItemRoom || t == ItemEquipment
}

// Hold is a soft, time-boxed claim on inventory made when an item enters
// the cart. It is consumed at checkout, removed by the user, or garbage
// collected once ExpiresAt passes. An expired hold counts as absent for
// availability even before deletion.
type Hold struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ItemType   ItemType
	ItemID     uuid.UUID
	Quantity   int
	PriceCents int64
	Start      *time.Time // nil for products
	End        *time.Time
	BranchID   *uuid.UUID
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func New(
	userID uuid.UUID,
	itemType ItemType,
	itemID uuid.UUID,
	quantity int,
	priceCents int64,
	start, end *time.Time,
	branchID *uuid.UUID,
	now time.Time,
	ttl time.Duration,
) (*Hold, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if itemType.Bookable() {
		if start == nil || end == nil {
			return nil, ErrMissingWindow
		}
		if !start.Before(*end) {
			return nil, ErrInvalidWindow
		}
	}

	return &Hold{
		ID:         uuid.New(),
		UserID:     userID,
		ItemType:   itemType,
		ItemID:     itemID,
		Quantity:   quantity,
		PriceCents: priceCents,
		Start:      start,
		End:        end,
		BranchID:   branchID,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}, nil
}

func (h *Hold) Expired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
