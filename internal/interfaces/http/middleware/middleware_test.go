package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/infrastructure/auth"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/constants"
	"github.com/adli-inc/adli/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type resolverFunc func(ctx context.Context, userID uint) (agency.Actor, error)

func (f resolverFunc) Resolve(ctx context.Context, userID uint) (agency.Actor, error) {
	return f(ctx, userID)
}

type enforcerFunc func(role, resource, action string) (bool, error)

func (f enforcerFunc) Enforce(role, resource, action string) (bool, error) {
	return f(role, resource, action)
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func newJWT() *auth.JWTService {
	clock := biztime.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	return auth.NewJWTServiceWithClock("test-secret", "adli", 60, clock)
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ResolvesActor(t *testing.T) {
	jwt := newJWT()
	token, _, err := jwt.Generate(7)
	require.NoError(t, err)

	want := agency.Actor{UserID: 7, Role: agency.RoleChancellery, EmployeeID: 3}
	mw := NewAuthMiddleware(jwt, resolverFunc(func(_ context.Context, userID uint) (agency.Actor, error) {
		assert.Equal(t, uint(7), userID)
		return want, nil
	}), testLogger())

	engine := gin.New()
	var got agency.Actor
	engine.GET("/x", mw.RequireAuth(), func(c *gin.Context) {
		got, _ = ActorFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	w := serve(engine, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, got)
}

func TestRequireAuth_Rejects(t *testing.T) {
	jwt := newJWT()
	other := auth.NewJWTServiceWithClock("other-secret", "adli", 60, biztime.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)))
	forged, _, err := other.Generate(7)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwt, resolverFunc(func(context.Context, uint) (agency.Actor, error) {
		t.Fatal("resolver must not be called")
		return agency.Actor{}, nil
	}), testLogger())

	engine := gin.New()
	engine.GET("/x", mw.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"forged":    "Bearer " + forged,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if header != "" {
				req.Header.Set(constants.HeaderAuthorization, header)
			}
			assert.Equal(t, http.StatusUnauthorized, serve(engine, req).Code)
		})
	}
}

func TestRequireAuth_ResolverFailure(t *testing.T) {
	jwt := newJWT()
	token, _, err := jwt.Generate(7)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwt, resolverFunc(func(context.Context, uint) (agency.Actor, error) {
		return agency.Actor{}, errors.New("db down")
	}), testLogger())

	engine := gin.New()
	engine.GET("/x", mw.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, serve(engine, req).Code)
}

func TestRequirePermission(t *testing.T) {
	enforcer := enforcerFunc(func(role, resource, action string) (bool, error) {
		return role == "chancellery" && resource == agency.ResourceRequest && action == agency.PermRegister, nil
	})
	pm := NewPermissionMiddleware(enforcer, testLogger())

	cases := []struct {
		name  string
		actor *agency.Actor
		want  int
	}{
		{"chancellery allowed", &agency.Actor{UserID: 1, Role: agency.RoleChancellery}, http.StatusOK},
		{"executor denied", &agency.Actor{UserID: 2, Role: agency.RoleExecutor, EmployeeID: 4}, http.StatusForbidden},
		{"no actor", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.POST("/x", func(c *gin.Context) {
				if tc.actor != nil {
					c.Set(constants.ContextKeyActor, *tc.actor)
				}
			}, pm.RequirePermission(agency.ResourceRequest, agency.PermRegister), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tc.want, serve(engine, httptest.NewRequest(http.MethodPost, "/x", nil)).Code)
		})
	}
}

func TestRequirePermission_EnforcerError(t *testing.T) {
	pm := NewPermissionMiddleware(enforcerFunc(func(string, string, string) (bool, error) {
		return false, errors.New("policy unavailable")
	}), testLogger())

	engine := gin.New()
	engine.POST("/x", func(c *gin.Context) {
		c.Set(constants.ContextKeyActor, agency.Actor{UserID: 1, Role: agency.RoleChancellery})
	}, pm.RequirePermission(agency.ResourceRequest, agency.PermRead), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusInternalServerError, serve(engine, httptest.NewRequest(http.MethodPost, "/x", nil)).Code)
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/x", func(c *gin.Context) {
		seen = c.GetString(constants.ContextKeyRequestID)
		c.Status(http.StatusOK)
	})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	w = serve(engine, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
}

func TestLanguage(t *testing.T) {
	engine := gin.New()
	engine.Use(Language())
	var got language.Tag
	engine.GET("/x", func(c *gin.Context) {
		got = LanguageFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(constants.HeaderAcceptLanguage, "en-US,en;q=0.9")
	serve(engine, req)
	assert.Equal(t, language.English, got)

	req = httptest.NewRequest(http.MethodGet, "/x?lang=uz", nil)
	req.Header.Set(constants.HeaderAcceptLanguage, "en")
	serve(engine, req)
	assert.Equal(t, language.Uzbek, got)

	serve(engine, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, language.Russian, got)
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(testLogger()))
	engine.GET("/x", func(c *gin.Context) { panic("boom") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.ErrMsgInternalServerError)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://panel.adliya.uz"}))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://panel.adliya.uz")
	w := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://panel.adliya.uz", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(engine, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
