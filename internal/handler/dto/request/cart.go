package request

import (
	"time"

	"praxis-booking/internal/domain/hold"
	"praxis-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ItemType string     `json:"item_type" binding:"required,oneof=room equipment product"`
	ItemID   uuid.UUID  `json:"item_id" binding:"required"`
	Quantity int        `json:"quantity" binding:"required,min=1"`
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	BranchID *uuid.UUID `json:"branch_id"`
}

func (r AddToCartRequest) ToInput() (commands.AddToCartInput, error) {
	itemType, err := hold.ParseItemType(r.ItemType)
	if err != nil {
		return commands.AddToCartInput{}, err
	}
	return commands.AddToCartInput{
		ItemType: itemType,
		ItemID:   r.ItemID,
		Quantity: r.Quantity,
		Start:    r.Start,
		End:      r.End,
		BranchID: r.BranchID,
	}, nil
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
