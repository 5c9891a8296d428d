package middleware

import (
	"net/http"

	"content-admin/internal/domain/entity"
	"content-admin/pkg/response"
)

// RequireGroup admits requests whose token carries one of the given groups.
// Must run after Authenticate.
func RequireGroup(groups ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			for _, group := range groups {
				if claims.Group == group {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You do not have permission to perform this action.")
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireGroup(entity.GroupAdmin)(next)
}

func RequireMobileUser(next http.Handler) http.Handler {
	return RequireGroup(entity.GroupUser)(next)
}
