package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"content-admin/config"
	"content-admin/internal/domain/entity"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/service"
	"content-admin/internal/testutil"
	"content-admin/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRateLimiter_PerMinute(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	rl := NewRateLimiter(client, testutil.NewLogger(), metrics.New(), nil)
	h := rl.PerMinute("mobile_getotp", 2)(noContent)

	req := func(ip string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/mobile/getotp", nil)
		r.RemoteAddr = ip + ":5555"
		return r
	}

	assert.Equal(t, http.StatusNoContent, serve(h, req("10.0.0.1")).Code)
	assert.Equal(t, http.StatusNoContent, serve(h, req("10.0.0.1")).Code)

	rec := serve(h, req("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Request was throttled.")

	// Limits are per client.
	assert.Equal(t, http.StatusNoContent, serve(h, req("10.0.0.2")).Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	rl := NewRateLimiter(client, testutil.NewLogger(), nil, nil)
	mr.Close()

	h := rl.PerMinute("admin_login", 1)(noContent)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(h, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	h := NewRateLimiter(client, testutil.NewLogger(), nil, nil).PerMinute("admin_login", 0)(noContent)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusNoContent, serve(h, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
	}
}

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)

	t.Run("untrusted peer ignores forwarding headers", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
		r.Header.Set("X-Real-IP", "198.51.100.8")
		assert.Equal(t, "192.0.2.1", proxies.ClientIP(r))
	})

	t.Run("trusted peer skips trusted hops", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.1.2.3:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7, 10.9.9.9")
		assert.Equal(t, "198.51.100.7", proxies.ClientIP(r))
	})

	t.Run("trusted single address", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.10:1234"
		r.Header.Set("X-Real-IP", "198.51.100.8")
		assert.Equal(t, "198.51.100.8", proxies.ClientIP(r))
	})

	t.Run("no proxies configured", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.1.2.3:1234"
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		assert.Equal(t, "10.1.2.3", TrustedProxies(nil).ClientIP(r))
	})

	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	h := NewRateLimiter(client, testutil.NewLogger(), nil, nil).PerMinute("admin_login", 1)(noContent)

	req := func(forwarded string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", nil)
		r.RemoteAddr = "192.0.2.1:5555"
		r.Header.Set("X-Forwarded-For", forwarded)
		return r
	}

	assert.Equal(t, http.StatusNoContent, serve(h, req("203.0.113.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, req("203.0.113.2")).Code)
}

func TestAuthenticate(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	blacklist := service.NewTokenBlacklist(client)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "s", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	auth := NewAuthMiddleware(jwtService, blacklist, testutil.NewLogger())

	pair, err := jwtService.GeneratePair(jwt.Subject{IdentityID: 3, Kind: "mobile", Group: entity.GroupUser})
	require.NoError(t, err)

	withToken := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/mobile/me", nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		return r
	}

	mobileOnly := auth.Authenticate(RequireMobileUser(noContent))
	adminOnly := auth.Authenticate(RequireAdmin(noContent))

	assert.Equal(t, http.StatusUnauthorized, serve(mobileOnly, withToken("")).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mobileOnly, withToken(pair.Refresh)).Code)
	assert.Equal(t, http.StatusNoContent, serve(mobileOnly, withToken(pair.Access)).Code)
	assert.Equal(t, http.StatusForbidden, serve(adminOnly, withToken(pair.Access)).Code)

	_, err = blacklist.Add(context.Background(), pair.AccessClaims.TokenID(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(mobileOnly, withToken(pair.Access)).Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := NewCORSMiddleware("https://admin.example.com").Handle(noContent)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/books", nil)
	r.Header.Set("Origin", "https://admin.example.com")
	rec := serve(h, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	rec = serve(h, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
