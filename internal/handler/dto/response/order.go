package response

import "github.com/google/uuid"

type OrderStatusResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
}

type BlockCreatedResponse struct {
	BlockID uuid.UUID `json:"block_id"`
}
