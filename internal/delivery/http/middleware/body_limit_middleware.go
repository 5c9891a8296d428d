package middleware

import (
	"net/http"
	"strings"
)

const (
	DefaultJSONBodyLimit      = 1 << 20
	DefaultMultipartBodyLimit = 50 << 20
)

// LimitBody caps request bodies. Multipart uploads get their own, larger cap.
func LimitBody(jsonLimit, multipartLimit int64) func(http.Handler) http.Handler {
	if jsonLimit <= 0 {
		jsonLimit = DefaultJSONBodyLimit
	}
	if multipartLimit <= 0 {
		multipartLimit = DefaultMultipartBodyLimit
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				limit := jsonLimit
				if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
					limit = multipartLimit
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
