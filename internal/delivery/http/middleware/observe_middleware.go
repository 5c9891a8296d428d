package middleware

import (
	"net/http"
	"strconv"
	"time"

	"content-admin/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// ObserveMiddleware records request metrics and writes one access log line per request.
type ObserveMiddleware struct {
	log     *logrus.Logger
	metrics *metrics.Metrics
	proxies TrustedProxies
}

func NewObserveMiddleware(log *logrus.Logger, m *metrics.Metrics, proxies TrustedProxies) *ObserveMiddleware {
	return &ObserveMiddleware{log: log, metrics: m, proxies: proxies}
}

func (m *ObserveMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := routeTemplate(r)

		if m.metrics != nil {
			m.metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
			m.metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())
		}

		m.log.WithFields(logrus.Fields{
			"request_id": rid,
			"method":     r.Method,
			"path":       r.URL.Path,
			"route":      route,
			"status":     rec.status,
			"bytes":      rec.bytes,
			"duration":   duration.String(),
			"ip":         m.proxies.ClientIP(r),
		}).Info("HTTP access")
	})
}

// routeTemplate keeps metric label cardinality bounded by using the mux pattern.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
