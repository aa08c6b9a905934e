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
	"github.com/google/uuid"
)

type BlockHandler struct {
	blockCommands commands.BlockCommands
}

func NewBlockHandler(blockCommands commands.BlockCommands) *BlockHandler {
	return &BlockHandler{blockCommands: blockCommands}
}

// @Summary Add manual block
// @Description Blackout an interval on a resource
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBlockRequest true "Block interval"
// @Success 201 {object} resdto.BlockCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /blocks [post]
func (h *BlockHandler) AddBlock(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBlockRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	blockID, err := h.blockCommands.AddManualBlock(c.Request.Context(), principal, req.ResourceID, req.Start, req.End, req.Reason)
	if err != nil {
		h.writeBlockError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.BlockCreatedResponse{BlockID: blockID})
}

// @Summary Remove manual block
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /blocks/{id} [delete]
func (h *BlockHandler) RemoveBlock(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block ID format"})
		return
	}

	if err := h.blockCommands.RemoveManualBlock(c.Request.Context(), principal, blockID); err != nil {
		h.writeBlockError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BlockHandler) writeBlockError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, commands.ErrBlockNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block interval"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
