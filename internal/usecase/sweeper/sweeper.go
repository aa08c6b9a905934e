// Package sweeper enforces expiry server-side: client countdowns are a
// display affordance, this loop is the authority. Each tick garbage-collects
// expired cart holds and cancels orders whose payment window elapsed.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const expiredOrderBatch = 100

type Sweeper struct {
	uow      shared.UnitOfWork
	payments commands.PaymentCommands
	clock    clock.Clock
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func New(uow shared.UnitOfWork, payments commands.PaymentCommands, clk clock.Clock, interval time.Duration) *Sweeper {
	return &Sweeper{
		uow:      uow,
		payments: payments,
		clock:    clk,
		interval: interval,
	}
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Sweep runs one pass. Exported so tests and operational tooling can drive
// it without the ticker.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.clock.Now()

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		removed, err := tx.Holds().DeleteExpired(ctx, now)
		if err != nil {
			return err
		}
		if removed > 0 {
			slog.Info("expired cart holds removed", "count", removed)
		}
		return nil
	})
	if err != nil {
		slog.Error("hold sweep failed", "error", err.Error())
	}

	var expired []uuid.UUID
	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		expired, err = tx.Orders().ExpiredUnsettled(ctx, now, expiredOrderBatch)
		return err
	})
	if err != nil {
		slog.Error("expired order scan failed", "error", err.Error())
		return
	}

	for _, id := range expired {
		// A webhook may settle the order between the scan and this call;
		// CancelExpiredOrder re-checks under lock and leaves it alone.
		if err := s.payments.CancelExpiredOrder(ctx, id); err != nil {
			if errors.Is(err, commands.ErrOrderNotExpired) {
				continue
			}
			slog.Error("expired order cancellation failed", "order_id", id, "error", err.Error())
		}
	}
}
