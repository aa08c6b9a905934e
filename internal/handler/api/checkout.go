package api

import (
	"errors"
	"net/http"

	reqdto "praxis-booking/internal/handler/dto/request"
	resdto "praxis-booking/internal/handler/dto/response"
	"praxis-booking/internal/handler/middleware"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkoutCommands: checkoutCommands}
}

// @Summary Commit checkout
// @Description Promote the cart into an order with durable reservations
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} resdto.CheckoutResponse
// @Router /checkout [post]
func (h *CheckoutHandler) CommitCheckout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		return
	}

	result, err := h.checkoutCommands.CommitCheckout(c.Request.Context(), principal, in)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cart is empty"})
		case errors.Is(err, errs.ErrSlotNoLongerAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot no longer available, please pick another time"})
		case errors.Is(err, errs.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Cash checkout requires an admin"})
		case errors.Is(err, commands.ErrOrderExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Order ID already used"})
		case errors.Is(err, errs.ErrGateway) && result != nil:
			// The order committed; the client should poll its status once
			// the provider recovers.
			c.JSON(http.StatusBadGateway, resdto.FromCheckoutResult(result))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
