package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiretop/internal/domain/user"
	"hiretop/internal/pkg/jwt"
	"hiretop/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, reply) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var r reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return resp, r
}

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/panic", func(fiber.Ctx) error { panic("boom") })
	app.Get("/validation", func(fiber.Ctx) error {
		return validation.Errors{{Field: "full_name", Message: "full_name is required"}}
	})
	app.Get("/unavailable", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "storage breaker open", nil, errors.New("open"))
	})
	app.Get("/internal", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "upstream said no", nil, nil)
	})
	app.Get("/conflict", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Already applied", nil, nil)
	})

	resp, r := call(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", r.Message)

	resp, r = call(t, app, httptest.NewRequest(http.MethodGet, "/validation", nil))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.JSONEq(t, `[{"field":"full_name","message":"full_name is required"}]`, string(r.Data))

	resp, r = call(t, app, httptest.NewRequest(http.MethodGet, "/unavailable", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "service unavailable", r.Message)

	resp, r = call(t, app, httptest.NewRequest(http.MethodGet, "/internal", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", r.Message)

	resp, r = call(t, app, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Already applied", r.Message)

	resp, _ = call(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthMiddlewareAndRequireRole(t *testing.T) {
	svc := jwt.NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	auth := NewAuthMiddleware(svc)

	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/me", auth.Middleware(), RequireRole(user.RoleEnterprise), func(c fiber.Ctx) error {
		id, ok := UserIDFrom(c)
		require.True(t, ok)
		return c.JSON(reply{Status: 200, Message: id.String()})
	})

	userID := uuid.New()
	enterprise, err := svc.GenerateAccessToken(userID, "e@example.com", string(user.RoleEnterprise))
	require.NoError(t, err)
	candidate, err := svc.GenerateAccessToken(uuid.New(), "c@example.com", string(user.RoleCandidate))
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID, string(user.RoleEnterprise))
	require.NoError(t, err)

	withToken := func(tok string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		return req
	}

	resp, r := call(t, app, withToken(enterprise))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, userID.String(), r.Message)

	resp, _ = call(t, app, withToken(candidate))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, withToken(refresh))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, withToken(""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, withToken("garbage"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("  bearer abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "abc", "Basic abc", "Bearer  "} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

type observed struct {
	method, route string
	status        int
}

type recordingObserver struct{ got []observed }

func (o *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.got = append(o.got, observed{method, route, status})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}
	app := fiber.New()
	app.Use(Metrics(obs))
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/jobs/:id", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "Job offer not found", nil, nil)
	})

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	require.Len(t, obs.got, 2)
	for _, o := range obs.got {
		assert.Equal(t, observed{"GET", "/jobs/:id", fiber.StatusNotFound}, o)
	}
}
