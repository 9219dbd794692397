package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/infrastructure/auth"
	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/logger"
	"github.com/adli-inc/adli/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	roles      agency.RoleResolver
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, roles agency.RoleResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		roles:      roles,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the resolved actor.
// An account with no employee profile still authenticates, as RoleNone.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			m.logger.Warnw("token subject rejected", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token subject")
			c.Abort()
			return
		}

		actor, err := m.roles.Resolve(c.Request.Context(), userID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyActor, actor)

		c.Next()
	}
}

// ActorFrom returns the actor stored by RequireAuth.
func ActorFrom(c *gin.Context) (agency.Actor, bool) {
	v, ok := c.Get(constants.ContextKeyActor)
	if !ok {
		return agency.Actor{}, false
	}
	actor, ok := v.(agency.Actor)
	return actor, ok
}
