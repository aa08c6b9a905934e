package resource

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidBlockRange = errors.New("block start must be before end")

// Block is an admin-entered blackout interval. Blocks are absolute: any
// hour they touch is unavailable regardless of schedule or reservations.
// They are created and deleted, never mutated.
type Block struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Reason     string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}

func NewBlock(resourceID uuid.UUID, start, end time.Time, reason string, createdBy uuid.UUID, now time.Time) (*Block, error) {
	if !start.Before(end) {
		return nil, ErrInvalidBlockRange
	}
	return &Block{
		ID:         uuid.New(),
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		Reason:     reason,
		CreatedBy:  createdBy,
		CreatedAt:  now,
	}, nil
}

func (b *Block) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}
