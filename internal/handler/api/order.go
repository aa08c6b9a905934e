package api

import (
	"errors"
	"net/http"

	reqdto "praxis-booking/internal/handler/dto/request"
	resdto "praxis-booking/internal/handler/dto/response"
	"praxis-booking/internal/handler/middleware"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	paymentCommands commands.PaymentCommands
	orderQueries    queries.OrderQueries
}

func NewOrderHandler(paymentCommands commands.PaymentCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		paymentCommands: paymentCommands,
		orderQueries:    orderQueries,
	}
}

// @Summary Get order
// @Description Order with its product lines and reservations
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), principal, orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List orders
// @Description Orders of the current user, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.OrderView
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.orderQueries.ListOrders(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List reservations
// @Description Reservations of the current user, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ReservationView
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *OrderHandler) ListReservations(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.orderQueries.ListReservations(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Check payment status
// @Description Poll the gateway and reconcile the order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderStatusResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders/{id}/status [post]
func (h *OrderHandler) CheckStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	status, err := h.paymentCommands.CheckStatus(c.Request.Context(), orderID)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OrderStatusResponse{OrderID: orderID, Status: status.String()})
}

// @Summary Cancel expired order
// @Description Cancel an order whose payment window elapsed
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/cancel-expired [post]
func (h *OrderHandler) CancelExpired(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	if err := h.paymentCommands.CancelExpiredOrder(c.Request.Context(), orderID); err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Capture payment
// @Description Settle a card pre-authorization
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders/{id}/capture [post]
func (h *OrderHandler) CapturePayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	if err := h.paymentCommands.CapturePayment(c.Request.Context(), orderID); err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Refund order
// @Description Reverse a settled pix or card payment
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.RefundRequest false "Refund reason"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req reqdto.RefundRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.paymentCommands.Refund(c.Request.Context(), principal, orderID, req.Reason); err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel cash order
// @Description Admin reversal of a paid cash order, audited
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CancelCashRequest true "Cancellation reason"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/{id}/cancel-cash [post]
func (h *OrderHandler) CancelCash(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req reqdto.CancelCashRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cancellation reason required"})
		return
	}

	if err := h.paymentCommands.CancelCashOrder(c.Request.Context(), principal, orderID, req.Reason); err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound), errors.Is(err, queries.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, errs.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Operation not valid for current order status"})
	case errors.Is(err, commands.ErrOrderNotExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order payment window has not elapsed"})
	case errors.Is(err, commands.ErrNoTransaction):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order has no gateway transaction"})
	case errors.Is(err, errs.ErrGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
