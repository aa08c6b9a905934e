package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"praxis-booking/internal/domain/identity"
	"praxis-booking/internal/handler/api"
	"praxis-booking/internal/handler/middleware"
	"praxis-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Cart         *api.CartHandler
	Checkout     *api.CheckoutHandler
	Order        *api.OrderHandler
	Webhook      *api.WebhookHandler
	Block        *api.BlockHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// Availability is a public read; the webhook authenticates by
		// signature, not by token.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/resources/:id/availability", Handler: h.Availability.GetAvailability},
			{Method: http.MethodPost, Path: "/webhooks/payment", Handler: h.Webhook.HandlePayment},
		})

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Cart.AddToCart},
				{Method: http.MethodGet, Path: "", Handler: h.Cart.ListCart},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.ClearCart},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Cart.UpdateCart},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Cart.RemoveFromCart},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.CommitCheckout},
				{Method: http.MethodGet, Path: "/orders", Handler: h.Order.ListOrders},
				{Method: http.MethodGet, Path: "/orders/:id", Handler: h.Order.GetOrder},
				{Method: http.MethodPost, Path: "/orders/:id/status", Handler: h.Order.CheckStatus},
				{Method: http.MethodPost, Path: "/orders/:id/cancel-expired", Handler: h.Order.CancelExpired},
				{Method: http.MethodGet, Path: "/reservations", Handler: h.Order.ListReservations},
			})
		}

		admin := apiGroup.Group("")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(identity.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/orders/:id/capture", Handler: h.Order.CapturePayment},
				{Method: http.MethodPost, Path: "/orders/:id/refund", Handler: h.Order.Refund},
				{Method: http.MethodPost, Path: "/orders/:id/cancel-cash", Handler: h.Order.CancelCash},
				{Method: http.MethodPost, Path: "/blocks", Handler: h.Block.AddBlock},
				{Method: http.MethodDelete, Path: "/blocks/:id", Handler: h.Block.RemoveBlock},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
