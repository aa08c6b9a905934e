package commands

import (
	"context"
	"time"

	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/domain/resource"
	"praxis-booking/internal/infra"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/errs"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound = errs.New("resource not found")
	ErrBlockNotFound    = errs.New("manual block not found")
)

type BlockCommands interface {
	AddManualBlock(ctx context.Context, actor *identity.Principal, resourceID uuid.UUID, start, end time.Time, reason string) (uuid.UUID, error)
	RemoveManualBlock(ctx context.Context, actor *identity.Principal, blockID uuid.UUID) error
}

type blockUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBlockUseCase(uow shared.UnitOfWork, clk clock.Clock) BlockCommands {
	return &blockUseCaseImpl{uow: uow, clock: clk}
}

// AddManualBlock records an admin blackout. Blocks coexist with existing
// reservations: they stop new bookings but never touch committed ones.
func (b *blockUseCaseImpl) AddManualBlock(ctx context.Context, actor *identity.Principal, resourceID uuid.UUID, start, end time.Time, reason string) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, errs.ErrUnauthorized
	}

	block, err := resource.NewBlock(resourceID, start, end, reason, actor.UserID, b.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidRange)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().FindByID(ctx, resourceID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return err
		}
		if err := tx.Blocks().Create(ctx, block); err != nil {
			return err
		}
		return tx.Audit().Record(ctx, actor.UserID, "block.add", &block.ID, reason)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return block.ID, nil
}

func (b *blockUseCaseImpl) RemoveManualBlock(ctx context.Context, actor *identity.Principal, blockID uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}

	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Blocks().Delete(ctx, blockID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBlockNotFound
			}
			return err
		}
		return tx.Audit().Record(ctx, actor.UserID, "block.remove", &blockID, "")
	})
}
