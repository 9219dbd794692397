package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/adli-inc/adli/internal/interfaces/http/middleware"
	"github.com/adli-inc/adli/internal/interfaces/http/routes"
	"github.com/adli-inc/adli/internal/shared/utils"

	_ "github.com/adli-inc/adli/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("access")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.Language())

	c.engine.GET("/health", c.health)
	c.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupPublicRequestRoutes(c.engine, &routes.PublicRequestRouteConfig{
		Handler:       c.hdlrs.publicRequestHandler,
		IntakeLimiter: c.intakeLimiter,
		TrackLimiter:  c.trackLimiter,
	})
	routes.SetupPanelRoutes(c.engine, &routes.PanelRouteConfig{
		Handler:              c.hdlrs.panelRequestHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

func (c *Container) health(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		c.log.Errorw("health check failed", "error", err)
		utils.ErrorResponse(ctx, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "", gin.H{"status": "ok"})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (c *Container) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Infow("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.log.Infow("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
