package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// quietPaths are probe endpoints that are only logged on failure.
var quietPaths = []string{"/health", "/metrics", "/swagger/"}

// Logger writes one access record per request. Panel requests carry the
// resolved actor so a worklist or transition can be traced to an employee.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		if status < 400 && isQuiet(c.Request.URL.Path) {
			return
		}

		args := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if actor, ok := ActorFrom(c); ok {
			args = append(args, "user_id", actor.UserID, "role", actor.Role.String())
			if actor.HasEmployee() {
				args = append(args, "employee_id", actor.EmployeeID)
			}
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Infow("request served", args...)
		}
	}
}

func isQuiet(path string) bool {
	for _, p := range quietPaths {
		if path == p || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
