package middleware

import (
	"context"
	"net/http"
	"strings"

	"content-admin/internal/service"
	"content-admin/pkg/jwt"
	"content-admin/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const claimsKey contextKey = "claims"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	blacklist  service.TokenBlacklist
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, blacklist service.TokenBlacklist, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		blacklist:  blacklist,
		log:        log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authentication credentials were not provided.")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateTyped(parts[1], jwt.AccessToken)
		if err != nil {
			response.Unauthorized(w, "Given token not valid for any token type")
			return
		}

		revoked, err := m.blacklist.Contains(r.Context(), claims.TokenID())
		if err != nil {
			m.log.Warnf("Failed to check token blacklist: %+v", err)
			response.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
			return
		}
		if revoked {
			response.Unauthorized(w, "Token is blacklisted")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the access token claims set by Authenticate.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}
