package request

import (
	"praxis-booking/internal/domain/order"
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type PayerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
}

type CheckoutRequest struct {
	OrderID uuid.UUID    `json:"order_id" binding:"required"`
	Method  string       `json:"method" binding:"required,oneof=pix boleto card cash"`
	Payer   PayerRequest `json:"payer"`
}

func (r CheckoutRequest) ToInput() (commands.CheckoutInput, error) {
	method, err := order.ParseMethod(r.Method)
	if err != nil {
		return commands.CheckoutInput{}, err
	}
	return commands.CheckoutInput{
		OrderID: r.OrderID,
		Method:  method,
		Payer: gateway.Payer{
			Name:     r.Payer.Name,
			Document: r.Payer.Document,
			Email:    r.Payer.Email,
		},
	}, nil
}
