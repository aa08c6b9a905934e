package api

import (
	"errors"
	"io"
	"net/http"

	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Signature"

// Payloads larger than this are not ours.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewWebhookHandler(paymentCommands commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{paymentCommands: paymentCommands}
}

// @Summary Payment webhook
// @Description Gateway status delivery, HMAC-signed, at-least-once
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Signature header string true "HMAC-SHA256 of the raw body"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable payload"})
		return
	}

	err = h.paymentCommands.HandleWebhook(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "applied"})
	case errors.Is(err, errs.ErrAlreadyProcessed):
		// Replays acknowledge 200 so the provider stops retrying.
		c.JSON(http.StatusOK, gin.H{"status": "already_processed"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
	case errors.Is(err, commands.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown transaction"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
