package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rich-Bam/Time-2026-sub001/config"
	"github.com/Rich-Bam/Time-2026-sub001/internal/api/handler"
	"github.com/Rich-Bam/Time-2026-sub001/internal/api/middleware"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/jwt"
	"github.com/Rich-Bam/Time-2026-sub001/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// New assembles the gin engine with all routes and middleware.
func New(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.AccessLog(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(&cfg.Server.CORS),
		middleware.BodyLimit(maxBodyBytes),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// Authentication endpoints are rate limited harder than the rest.
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(rdb, logger, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", middleware.RateLimit(rdb, logger, 20, time.Minute), h.Auth.Refresh)

		authed := auth.Group("", middleware.JWTAuth(jwtMgr, rdb, logger))
		authed.POST("/logout", h.Auth.Logout)
		authed.GET("/me", h.Auth.Me)
		authed.POST("/password", h.Auth.ChangePassword)
	}

	protected := api.Group("", middleware.JWTAuth(jwtMgr, rdb, logger))
	protected.Use(middleware.RateLimit(rdb, logger, 300, time.Minute))

	users := protected.Group("/users")
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id", h.User.Update)
		users.PUT("/:id/role", middleware.RequireAdmin(), h.User.AssignRole)
	}

	projects := protected.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.GET("/:id", h.Project.Get)
		projects.POST("", middleware.RequireAdmin(), h.Project.Create)
		projects.PATCH("/:id", middleware.RequireAdmin(), h.Project.Update)
		projects.DELETE("/:id", middleware.RequireAdmin(), h.Project.Delete)
	}

	timesheet := protected.Group("/timesheet")
	{
		timesheet.GET("/week", h.Timesheet.Week)
		timesheet.GET("/overtime", h.Timesheet.Overtime)
		timesheet.POST("/entries", h.Timesheet.Create)
		timesheet.PATCH("/entries/:id", h.Timesheet.Update)
		timesheet.DELETE("/entries/:id", h.Timesheet.Delete)
		timesheet.PUT("/overnight", h.Timesheet.SetOvernightStay)
	}

	weeks := protected.Group("/weeks")
	{
		weeks.GET("/status", h.Week.Status)
		weeks.POST("/confirm", h.Week.Confirm)
		weeks.POST("/approve", middleware.RequireAdmin(), h.Week.Approve)
		weeks.POST("/reopen", middleware.RequireAdmin(), h.Week.Reopen)
		weeks.GET("/pending-review", middleware.RequireAdmin(), h.Week.PendingReview)
	}

	shares := protected.Group("/shares")
	{
		shares.POST("", h.Share.Create)
		shares.GET("/incoming", h.Share.ListIncoming)
		shares.GET("/outgoing", h.Share.ListOutgoing)
		shares.GET("/:id/preview", h.Share.Preview)
		shares.POST("/:id/accept", h.Share.Accept)
		shares.POST("/:id/decline", h.Share.Decline)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
	}

	export := protected.Group("/export")
	{
		export.GET("/excel", h.Export.Excel)
		export.GET("/calendar", h.Export.Calendar)
	}

	return engine
}
