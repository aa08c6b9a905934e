package shared

import (
	"github.com/google/uuid"
)

type ProductSnapshot struct {
	ID            uuid.UUID
	Name          string
	PriceCents    int64
	StockQuantity int
	Active        bool
}

type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	PriceCents int64
}
