package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Reason     string    `json:"reason"`
}
