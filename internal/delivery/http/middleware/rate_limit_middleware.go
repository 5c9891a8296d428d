package middleware

import (
	"net/http"
	"strconv"
	"time"

	"content-admin/internal/infrastructure/metrics"
	"content-admin/pkg/apperror"
	"content-admin/pkg/response"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RateLimiter struct {
	limiter *redis_rate.Limiter
	log     *logrus.Logger
	metrics *metrics.Metrics
	proxies TrustedProxies
}

func NewRateLimiter(rdb *redis.Client, log *logrus.Logger, m *metrics.Metrics, proxies TrustedProxies) *RateLimiter {
	return &RateLimiter{
		limiter: redis_rate.NewLimiter(rdb),
		log:     log,
		metrics: m,
		proxies: proxies,
	}
}

// PerMinute throttles one route per client IP. A failing redis lets the request through.
func (rl *RateLimiter) PerMinute(route string, rate int) func(http.Handler) http.Handler {
	limit := redis_rate.PerMinute(rate)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rate <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "ratelimit:" + route + ":" + rl.proxies.ClientIP(r)
			res, err := rl.limiter.Allow(r.Context(), key, limit)
			if err != nil {
				rl.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Rate limiter error, failing open")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if res.Allowed == 0 {
				retryAfter := int(res.RetryAfter / time.Second)
				if retryAfter < 1 {
					retryAfter = 1
				}
				if rl.metrics != nil {
					rl.metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.FromError(w, apperror.TooManyRequests("Request was throttled. Expected available in "+strconv.Itoa(retryAfter)+" seconds."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
