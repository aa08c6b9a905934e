package response

import (
	"praxis-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	OrderID        uuid.UUID         `json:"order_id"`
	TotalCents     int64             `json:"total_cents"`
	Status         string            `json:"status"`
	ReservationIDs []uuid.UUID       `json:"reservation_ids"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	Payment        map[string]string `json:"payment,omitempty"`
}

func FromCheckoutResult(r *commands.CheckoutResult) CheckoutResponse {
	resp := CheckoutResponse{
		OrderID:        r.OrderID,
		TotalCents:     r.TotalCents,
		Status:         r.Status.String(),
		ReservationIDs: r.ReservationIDs,
	}
	if r.Transaction != nil {
		resp.TransactionID = r.Transaction.ID
		resp.Payment = r.Transaction.Payload
	}
	return resp
}
