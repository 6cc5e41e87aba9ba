package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/config"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/handler"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/middleware"
	"github.com/vialtrack/vialtrack-api/pkg/jwtauth"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Org          *handler.OrgHandler
	Contact      *handler.ContactHandler
	Inventory    *handler.InventoryHandler
	Movement     *handler.MovementHandler
	Order        *handler.OrderHandler
	Shipping     *handler.ShippingHandler
	Protocol     *handler.ProtocolHandler
	Profile      *handler.ProfileHandler
	Referral     *handler.ReferralHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Lead         *handler.LeadHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *jwtauth.Manager
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Public lead capture, no authentication
		v1.POST("/leads", h.Lead.Submit)

		// Authenticated routes that work before the user belongs to an org
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerAccountRoutes(authed, h)

		// Org-scoped routes; everything below queries within the caller's org
		org := authed.Group("")
		org.Use(middleware.OrgMiddleware())

		rateLimiter := middleware.NewOrgRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		org.Use(rateLimiter.Middleware())

		registerOrgRoutes(org, h, deps)
	}

	return router
}

// registerAccountRoutes covers the caller's own account surface: profile,
// referral linking, chat and notifications. None of these require an org
// in the token, so a freshly signed-up user can reach them.
func registerAccountRoutes(authed *gin.RouterGroup, h *Handlers) {
	authed.GET("/profile", h.Profile.Me)
	authed.PUT("/profile", h.Profile.UpdateMe)

	authed.POST("/referrals/link", h.Referral.Link)

	chat := authed.Group("/chat")
	{
		chat.POST("/messages", h.Chat.Send)
		chat.GET("/messages", h.Chat.History)
		chat.DELETE("/messages", h.Chat.Clear)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
	}
}

func registerOrgRoutes(org *gin.RouterGroup, h *Handlers, deps *Deps) {
	org.GET("/orgs/current", h.Org.GetCurrent)
	org.PUT("/orgs/current", middleware.RequireRole("admin"), h.Org.UpdateCurrent)

	registerContactRoutes(org, h)
	registerInventoryRoutes(org, h)
	registerMovementRoutes(org, h)
	registerOrderRoutes(org, h, deps)
	registerProtocolRoutes(org, h)
	registerAdminRoutes(org, h)
}

func registerContactRoutes(org *gin.RouterGroup, h *Handlers) {
	contacts := org.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.POST("", h.Contact.Create)
		contacts.GET("/me", h.Contact.Me)
		contacts.GET("/:id", h.Contact.Get)
		contacts.PUT("/:id", h.Contact.Update)
		contacts.DELETE("/:id", h.Contact.Delete)
	}
}

func registerInventoryRoutes(org *gin.RouterGroup, h *Handlers) {
	peptides := org.Group("/peptides")
	{
		peptides.GET("", h.Inventory.ListPeptides)
		peptides.POST("", h.Inventory.CreatePeptide)
		peptides.GET("/:id", h.Inventory.GetPeptide)
		peptides.PUT("/:id", h.Inventory.UpdatePeptide)
		peptides.DELETE("/:id", h.Inventory.DeletePeptide)
	}

	lots := org.Group("/lots")
	{
		lots.GET("", h.Inventory.ListLots)
		lots.POST("", h.Inventory.CreateLot)
		lots.GET("/:id", h.Inventory.GetLot)
		lots.PUT("/:id/payment-status", h.Inventory.UpdateLotPaymentStatus)
		lots.DELETE("/:id", h.Inventory.DeleteLot)
	}

	org.GET("/bottles", h.Inventory.ListBottles)
}

func registerMovementRoutes(org *gin.RouterGroup, h *Handlers) {
	movements := org.Group("/movements")
	{
		movements.GET("", h.Movement.List)
		movements.POST("", h.Movement.Create)
		movements.GET("/:id", h.Movement.Get)
	}
}

func registerOrderRoutes(org *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(deps.IdempotencyRepo)

	orders := org.Group("/sales-orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/export", h.Order.ExportCSV)
		// Money-moving operations honor Idempotency-Key so client retries
		// cannot double-charge or double-allocate
		orders.POST("", idempotent, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/items", h.Order.EditItems)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/mark-paid", idempotent, h.Order.MarkPaid)
		orders.POST("/:id/pay-with-credit", idempotent, h.Order.PayWithCredit)
		orders.POST("/:id/fulfill", idempotent, h.Order.Fulfill)
		orders.DELETE("/:id", h.Order.Delete)

		// Shipping sub-flow
		orders.GET("/:id/shipping/rates", h.Shipping.GetRates)
		orders.POST("/:id/shipping/label", idempotent, h.Shipping.BuyLabel)
		orders.POST("/:id/shipping/quick-ship", idempotent, h.Shipping.QuickShip)
		orders.POST("/:id/shipping/print", h.Shipping.PrintLabel)
		orders.PUT("/:id/shipping/status", h.Shipping.AdvanceStatus)
	}
}

func registerProtocolRoutes(org *gin.RouterGroup, h *Handlers) {
	protocols := org.Group("/protocols")
	{
		protocols.GET("", h.Protocol.List)
		protocols.POST("", h.Protocol.Create)
		protocols.GET("/:id", h.Protocol.Get)
		protocols.PUT("/:id", h.Protocol.Update)
		protocols.DELETE("/:id", h.Protocol.Delete)
		protocols.POST("/:id/assign", h.Protocol.AssignTemplate)
	}
}

func registerAdminRoutes(org *gin.RouterGroup, h *Handlers) {
	org.GET("/profiles/reps", h.Profile.ListReps)
	org.GET("/profiles/:id/balance", h.Profile.GetBalance)

	admin := org.Group("")
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/profiles", h.Profile.List)
		admin.PUT("/profiles/:id/partner-settings", h.Profile.UpdatePartnerSettings)
		admin.POST("/profiles/credit", h.Profile.GrantCredit)
		admin.GET("/leads", h.Lead.List)
	}
}
