package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/domain/agency"
	requesthandlers "github.com/adli-inc/adli/internal/interfaces/http/handlers/request"
	"github.com/adli-inc/adli/internal/interfaces/http/middleware"
)

type PublicRequestRouteConfig struct {
	Handler *requesthandlers.PublicRequestHandler
	// IntakeLimiter is nil when Redis is not configured.
	IntakeLimiter *middleware.RateLimiter
	TrackLimiter  *middleware.RateLimiter
}

func SetupPublicRequestRoutes(engine *gin.Engine, config *PublicRequestRouteConfig) {
	public := engine.Group("/public/requests")
	{
		public.POST("", limit(config.IntakeLimiter, config.Handler.CreateRequest)...)
		public.POST("/track", limit(config.TrackLimiter, config.Handler.TrackRequest)...)
		public.GET("/:public_id/history", limit(config.TrackLimiter, config.Handler.GetHistory)...)
	}
}

type PanelRouteConfig struct {
	Handler              *requesthandlers.PanelRequestHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupPanelRoutes(engine *gin.Engine, config *PanelRouteConfig) {
	perm := func(action string) gin.HandlerFunc {
		return config.PermissionMiddleware.RequirePermission(agency.ResourceRequest, action)
	}

	requests := engine.Group("/panel/requests")
	requests.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		requests.GET("", perm(agency.PermRead), config.Handler.ListRequests)
		requests.GET("/counts", perm(agency.PermRead), config.Handler.GetCounts)

		// Lifecycle actions
		requests.POST("/:id/register", perm(agency.PermRegister), config.Handler.Register)
		requests.POST("/:id/send-for-resolution", perm(agency.PermSendForResolution), config.Handler.SendForResolution)
		requests.POST("/:id/resolutions", perm(agency.PermResolve), config.Handler.CreateResolution)
		requests.POST("/:id/steps", perm(agency.PermAddStep), config.Handler.AddStep)
		requests.POST("/:id/done", perm(agency.PermMarkDone), config.Handler.MarkDone)

		requests.GET("/:id", perm(agency.PermRead), config.Handler.GetRequest)
	}
}

func limit(limiter *middleware.RateLimiter, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{limiter.Limit(), h}
}
