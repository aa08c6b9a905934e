package request

type RefundRequest struct {
	Reason string `json:"reason"`
}

type CancelCashRequest struct {
	Reason string `json:"reason" binding:"required"`
}
