package components

import (
	"praxis-booking/internal/infra/gateway"
	"praxis-booking/internal/pkg/clock"
	"praxis-booking/internal/pkg/config"
	"praxis-booking/internal/usecase/commands"
	"praxis-booking/internal/usecase/queries"
	"praxis-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.CartCommands {
			return commands.NewCartUseCase(uow, clk, cfg.Booking)
		},
		func(uow shared.UnitOfWork, gw gateway.Client, clk clock.Clock, cfg config.Config) commands.CheckoutCommands {
			return commands.NewCheckoutUseCase(uow, gw, clk, cfg.Booking)
		},
		func(uow shared.UnitOfWork, gw gateway.Client, clk clock.Clock, cfg config.Config) commands.PaymentCommands {
			return commands.NewPaymentUseCase(uow, gw, clk, cfg.Gateway.WebhookSecret)
		},
		commands.NewBlockUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewCartQueries,
		queries.NewOrderQueries,
	),
)
