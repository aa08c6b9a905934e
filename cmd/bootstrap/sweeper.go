package bootstrap

import (
	"context"

	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/shared"
	"praxis-booking/internal/usecase/sweeper"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Provide(NewSweeper),
	fx.Invoke(runSweeper),
)

func NewSweeper(uow shared.UnitOfWork, payments commands.PaymentCommands, clk clock.Clock, cfg config.Config) *sweeper.Sweeper {
	return sweeper.New(uow, payments, clk, cfg.Booking.SweepInterval)
}

func runSweeper(lc fx.Lifecycle, s *sweeper.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
