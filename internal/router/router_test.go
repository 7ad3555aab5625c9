package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/auth"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/lookup"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/nearby"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/profile"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/qa"
)

// testRouter wires handlers without services; only requests rejected before
// reaching a service may be sent through it.
func testRouter(rateLimit int) http.Handler {
	logger := slog.Default()
	jwtCfg := config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Minute, Issuer: "travel-qa-api"}
	return SetupRouter(&Config{
		AuthHandler:            auth.NewHandlerImpl(nil, logger),
		ProfileHandler:         profile.NewHandlerImpl(nil, logger),
		LookupHandler:          lookup.NewHandlerImpl(lookup.NewServiceImpl(nil, time.Minute, logger), logger),
		NearbyHandler:          nearby.NewHandlerImpl(nil, logger),
		QAHandler:              qa.NewHandlerImpl(nil, logger),
		AuthenticateMiddleware: auth.Authenticate(logger, jwtCfg),
		AllowedOrigins:         []string{"http://localhost:3000"},
		QARateLimit:            rateLimit,
		Logger:                 logger,
	})
}

func TestPing(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(10).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestProfileRoutesRequireToken(t *testing.T) {
	r := testRouter(10)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/profile/1"},
		{http.MethodPut, "/profile/1"},
		{http.MethodPost, "/profile_location/1"},
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
	}
}

func TestSubmitIsRateLimited(t *testing.T) {
	r := testRouter(1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/qa_transaction", strings.NewReader("not json"))
		req.RemoteAddr = "203.0.113.7:4242"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestUnknownRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(10).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
