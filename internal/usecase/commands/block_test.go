//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BlockSuite struct {
	suite.Suite
	store  *memStore
	blocks commands.BlockCommands

	admin  *identity.Principal
	client *identity.Principal
	roomID uuid.UUID
}

func (s *BlockSuite) SetupTest() {
	s.store = newMemStore()
	s.blocks = commands.NewBlockUseCase(&memUoW{store: s.store}, clock.NewMockClock(cartNow))

	s.admin = &identity.Principal{UserID: uuid.New(), Role: identity.RoleAdmin}
	s.client = &identity.Principal{UserID: uuid.New(), Role: identity.RoleClient}
	s.roomID = uuid.New()

	room, err := resource.NewResource(s.roomID, "Sala 1", resource.KindRoom, 1, 6000,
		resource.NewTimeOfDay(8, 0), resource.NewTimeOfDay(20, 0),
		resource.NewWeekdays(time.Monday), true)
	s.Require().NoError(err)
	s.store.addResource(room)
}

func TestBlockSuite(t *testing.T) {
	suite.Run(t, new(BlockSuite))
}

func (s *BlockSuite) TestAddManualBlock() {
	start := cartNow.Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)

	blockID, err := s.blocks.AddManualBlock(context.Background(), s.admin, s.roomID, start, end, "painting")
	s.Require().NoError(err)

	b := s.store.blocks[blockID]
	s.Require().NotNil(b)
	s.Equal("painting", b.Reason)
	s.Equal(s.admin.UserID, b.CreatedBy)

	s.Require().Len(s.store.auditLog, 1)
	s.Equal("block.add", s.store.auditLog[0].action)
}

func (s *BlockSuite) TestAddManualBlock_Guards() {
	start := cartNow.Add(24 * time.Hour)
	end := start.Add(time.Hour)

	s.Run("non-admin", func() {
		_, err := s.blocks.AddManualBlock(context.Background(), s.client, s.roomID, start, end, "")
		s.ErrorIs(err, errs.ErrUnauthorized)
	})

	s.Run("inverted range", func() {
		_, err := s.blocks.AddManualBlock(context.Background(), s.admin, s.roomID, end, start, "")
		s.ErrorIs(err, errs.ErrInvalidRange)
	})

	s.Run("unknown resource", func() {
		_, err := s.blocks.AddManualBlock(context.Background(), s.admin, uuid.New(), start, end, "")
		s.ErrorIs(err, commands.ErrResourceNotFound)
	})
}

func (s *BlockSuite) TestRemoveManualBlock() {
	start := cartNow.Add(24 * time.Hour)
	blockID, err := s.blocks.AddManualBlock(context.Background(), s.admin, s.roomID, start, start.Add(time.Hour), "")
	s.Require().NoError(err)

	s.Run("non-admin", func() {
		s.ErrorIs(s.blocks.RemoveManualBlock(context.Background(), s.client, blockID), errs.ErrUnauthorized)
	})

	s.Run("admin removes it", func() {
		s.Require().NoError(s.blocks.RemoveManualBlock(context.Background(), s.admin, blockID))
		s.Empty(s.store.blocks)
	})

	s.Run("removing again is not found", func() {
		s.ErrorIs(s.blocks.RemoveManualBlock(context.Background(), s.admin, blockID), commands.ErrBlockNotFound)
	})
}
