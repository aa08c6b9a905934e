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

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add to cart
// @Description Place a time-boxed hold on a resource slot or product
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddToCartRequest true "Cart item"
// @Success 201 {object} resdto.AddToCartResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AddToCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item type"})
		return
	}

	holdID, err := h.cartCommands.AddToCart(c.Request.Context(), principal.UserID, in)
	if err != nil {
		h.writeCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.AddToCartResponse{HoldID: holdID})
}

// @Summary List cart
// @Description Active holds for the current user
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.HoldResponse
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) ListCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	holds, err := h.cartQueries.ListCart(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]resdto.HoldResponse, len(holds))
	for i, hv := range holds {
		response[i] = resdto.HoldResponse{
			ID:         hv.ID,
			ItemType:   hv.ItemType,
			ItemID:     hv.ItemID,
			Quantity:   hv.Quantity,
			PriceCents: hv.PriceCents,
			Start:      hv.Start,
			End:        hv.End,
			ExpiresAt:  hv.ExpiresAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Update cart item
// @Description Change a hold's quantity, re-validating capacity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Param request body reqdto.UpdateCartRequest true "New quantity"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/{id} [patch]
func (h *CartHandler) UpdateCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hold ID format"})
		return
	}

	var req reqdto.UpdateCartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cartCommands.UpdateCart(c.Request.Context(), principal.UserID, holdID, req.Quantity); err != nil {
		h.writeCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove from cart
// @Description Release one hold
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/{id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hold ID format"})
		return
	}

	if err := h.cartCommands.RemoveFromCart(c.Request.Context(), principal.UserID, holdID); err != nil {
		h.writeCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Description Release every hold of the current user
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ClearCartResponse
// @Failure 401 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	removed, err := h.cartCommands.ClearCart(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.ClearCartResponse{Removed: removed})
}

func (h *CartHandler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrItemNotFound), errors.Is(err, commands.ErrHoldNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, commands.ErrHoldNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "Cart hold belongs to another user"})
	case errors.Is(err, commands.ErrItemInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Item is not available for booking"})
	case errors.Is(err, errs.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": "Capacity exceeded for the requested slot"})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking window"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
