package components

import (
	"praxis-booking/internal/handler"
	"praxis-booking/internal/handler/api"
	"praxis-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewWebhookHandler,
		api.NewBlockHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	availability *api.AvailabilityHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	webhook *api.WebhookHandler,
	block *api.BlockHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Cart:         cart,
		Checkout:     checkout,
		Order:        order,
		Webhook:      webhook,
		Block:        block,
	}
}
