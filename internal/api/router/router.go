package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/colson89/ambulance-planning-sub001/config"
	"github.com/colson89/ambulance-planning-sub001/internal/api/handler"
	"github.com/colson89/ambulance-planning-sub001/internal/api/middleware"
	"github.com/colson89/ambulance-planning-sub001/pkg/jwt"
	"github.com/colson89/ambulance-planning-sub001/pkg/redis"
)

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// roster
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.List)
				shifts.GET("/:id", h.Shift.Get)
				shifts.GET("/:id/bids", middleware.RoleAuth("admin", "supervisor"), h.Bid.ListForShift)
				shifts.PUT("/:id/owner", middleware.RoleAuth("admin"), h.Shift.Reassign)
				shifts.POST("/:id/open", middleware.RoleAuth("admin"), h.Shift.MarkOpen)
				shifts.POST("/:id/planned", middleware.RoleAuth("admin"), h.Shift.MarkPlanned)
			}

			// direct transfer / swap
			exchanges := authorized.Group("/exchanges")
			{
				exchanges.POST("", h.Exchange.Create)
				exchanges.GET("/my", h.Exchange.ListMine)
				exchanges.GET("/pending", middleware.RoleAuth("admin", "supervisor"), h.Exchange.ListPending)
				exchanges.GET("", middleware.RoleAuth("admin"), h.Exchange.ListAll)
				exchanges.POST("/:id/approve", middleware.RoleAuth("admin", "supervisor"), h.Exchange.Approve)
				exchanges.POST("/:id/reject", middleware.RoleAuth("admin", "supervisor"), h.Exchange.Reject)
				exchanges.POST("/:id/cancel", h.Exchange.Cancel)
			}

			// open marketplace
			openSwaps := authorized.Group("/open-swaps")
			{
				openSwaps.POST("", h.Marketplace.OpenShift)
				openSwaps.GET("", h.Marketplace.ListOpen)
				openSwaps.GET("/my", h.Marketplace.ListMine)
				openSwaps.GET("/offers/my", h.Marketplace.ListMyOffers)
				openSwaps.GET("/pending", middleware.RoleAuth("admin", "supervisor"), h.Marketplace.ListPending)
				openSwaps.POST("/:id/offers", h.Marketplace.SubmitOffer)
				openSwaps.POST("/:id/offers/batch", h.Marketplace.SubmitOffers)
				openSwaps.POST("/offers/:offerId/withdraw", h.Marketplace.WithdrawOffer)
				openSwaps.POST("/:id/select", h.Marketplace.SelectOffer)
				openSwaps.POST("/:id/approve", middleware.RoleAuth("admin", "supervisor"), h.Marketplace.Approve)
				openSwaps.POST("/:id/reject", middleware.RoleAuth("admin", "supervisor"), h.Marketplace.Reject)
				openSwaps.POST("/:id/cancel", h.Marketplace.Cancel)
			}

			// open-shift bids
			bids := authorized.Group("/bids")
			{
				bids.POST("", h.Bid.Place)
				bids.GET("/my", h.Bid.ListMine)
				bids.POST("/:id/withdraw", h.Bid.Withdraw)
				bids.POST("/:id/resolve", middleware.RoleAuth("admin", "supervisor"), h.Bid.Resolve)
			}

			// coverage
			coverage := authorized.Group("/coverage")
			{
				coverage.GET("/gaps", h.Coverage.Gaps)
				coverage.GET("/daily", h.Coverage.Daily)
			}

			// station policy
			stations := authorized.Group("/stations")
			{
				stations.GET("/:id/settings", h.Settings.Get)
				stations.PUT("/:id/settings", middleware.RoleAuth("admin"), h.Settings.Update)
			}

			// notification feed
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListMine)
				notifications.POST("/:id/read", h.Notification.MarkRead)
				notifications.POST("/read-all", h.Notification.MarkAllRead)
			}
		}
	}

	return r
}
