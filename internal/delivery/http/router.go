package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"content-admin/internal/delivery/http/handler"
	"content-admin/internal/delivery/http/middleware"
	"content-admin/pkg/response"

	"github.com/gorilla/mux"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Account      *handler.AccountHandler
	Mobile       *handler.MobileHandler
	MobileUser   *handler.MobileUserHandler
	Professional *handler.ProfessionalHandler
	Book         *handler.BookHandler
	Event        *handler.EventHandler
	Material     *handler.MaterialHandler
	AuditLog     *handler.AuditLogHandler
}

// Throttle holds per-minute limits for the credential endpoints.
type Throttle struct {
	LoginPerMinute int
	OTPPerMinute   int
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	observe        *middleware.ObserveMiddleware
	rateLimiter    *middleware.RateLimiter
	throttle       Throttle
	metrics        http.Handler
	checks         map[string]HealthCheck
	mediaPrefix    string
	media          http.FileSystem
	jsonLimit      int64
	multipartLimit int64
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	observe *middleware.ObserveMiddleware,
	rateLimiter *middleware.RateLimiter,
	throttle Throttle,
	metrics http.Handler,
	checks map[string]HealthCheck,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		observe:        observe,
		rateLimiter:    rateLimiter,
		throttle:       throttle,
		metrics:        metrics,
		checks:         checks,
	}
}

// ServeMedia exposes locally stored uploads under prefix. Call before Setup.
func (r *Router) ServeMedia(prefix string, fs http.FileSystem) {
	r.mediaPrefix = "/" + strings.Trim(prefix, "/") + "/"
	r.media = fs
}

// SetBodyLimits caps request body sizes. Zero keeps the middleware defaults. Call before Setup.
func (r *Router) SetBodyLimits(jsonLimit, multipartLimit int64) {
	r.jsonLimit = jsonLimit
	r.multipartLimit = multipartLimit
}

// Setup mounts every route and returns the root handler, CORS included.
func (r *Router) Setup() http.Handler {
	h := r.handlers
	r.router.Use(r.observe.Handle)
	r.router.Use(middleware.LimitBody(r.jsonLimit, r.multipartLimit))

	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.metrics != nil {
		r.router.Handle("/metrics", r.metrics).Methods(http.MethodGet)
	}

	if r.media != nil {
		r.router.PathPrefix(r.mediaPrefix).Handler(http.StripPrefix(r.mediaPrefix, http.FileServer(r.media))).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Admin auth (public)
	api.Handle("/admin/login", r.throttled("admin_login", r.throttle.LoginPerMinute, h.Auth.Login)).Methods(http.MethodPost)
	api.HandleFunc("/admin/token/refresh", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Mobile (public)
	mobile := api.PathPrefix("/mobile").Subrouter()
	mobile.HandleFunc("/register", h.Mobile.Register).Methods(http.MethodPost)
	mobile.Handle("/getotp", r.throttled("mobile_getotp", r.throttle.OTPPerMinute, h.Mobile.GetOTP)).Methods(http.MethodPost)
	mobile.Handle("/validate_otp", r.throttled("mobile_validate_otp", r.throttle.OTPPerMinute, h.Mobile.ValidateOTP)).Methods(http.MethodPost)
	mobile.HandleFunc("/token/refresh", h.Mobile.RefreshToken).Methods(http.MethodPost)

	// Mobile (protected)
	mobileProtected := api.PathPrefix("/mobile").Subrouter()
	mobileProtected.Use(r.authMiddleware.Authenticate)
	mobileProtected.Use(middleware.RequireMobileUser)
	mobileProtected.HandleFunc("/me", h.Mobile.Me).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	admin.HandleFunc("/security/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)

	admin.HandleFunc("/account", h.Account.Get).Methods(http.MethodGet)
	admin.HandleFunc("/account", h.Account.Update).Methods(http.MethodPut)
	admin.HandleFunc("/account", h.Account.UpdatePhoto).Methods(http.MethodPatch)

	admin.HandleFunc("/professionals", h.Professional.List).Methods(http.MethodGet)
	admin.HandleFunc("/professionals", h.Professional.Create).Methods(http.MethodPost)
	admin.HandleFunc("/professionals", h.Professional.BulkDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/professionals/{id:[0-9]+}", h.Professional.Get).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{id:[0-9]+}", h.Professional.Update).Methods(http.MethodPut)
	admin.HandleFunc("/professionals/{id:[0-9]+}", h.Professional.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/books", h.Book.List).Methods(http.MethodGet)
	admin.HandleFunc("/books", h.Book.Create).Methods(http.MethodPost)
	admin.HandleFunc("/books", h.Book.BulkDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/books/{id:[0-9]+}", h.Book.Get).Methods(http.MethodGet)
	admin.HandleFunc("/books/{id:[0-9]+}", h.Book.Update).Methods(http.MethodPut)
	admin.HandleFunc("/books/{id:[0-9]+}", h.Book.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/events", h.Event.List).Methods(http.MethodGet)
	admin.HandleFunc("/events", h.Event.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events", h.Event.BulkDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/events/{id:[0-9]+}", h.Event.Get).Methods(http.MethodGet)
	admin.HandleFunc("/events/{id:[0-9]+}", h.Event.Update).Methods(http.MethodPut)
	admin.HandleFunc("/events/{id:[0-9]+}", h.Event.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/materials", h.Material.List).Methods(http.MethodGet)
	admin.HandleFunc("/materials", h.Material.Create).Methods(http.MethodPost)
	admin.HandleFunc("/materials", h.Material.BulkDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/materials/{id:[0-9]+}", h.Material.Get).Methods(http.MethodGet)
	admin.HandleFunc("/materials/{id:[0-9]+}", h.Material.Update).Methods(http.MethodPut)
	admin.HandleFunc("/materials/{id:[0-9]+}", h.Material.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/mobile-users", h.MobileUser.List).Methods(http.MethodGet)
	admin.HandleFunc("/mobile-users", h.MobileUser.Create).Methods(http.MethodPost)
	admin.HandleFunc("/mobile-users", h.MobileUser.BulkDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/mobile-users/{id:[0-9]+}", h.MobileUser.Get).Methods(http.MethodGet)
	admin.HandleFunc("/mobile-users/{id:[0-9]+}", h.MobileUser.Update).Methods(http.MethodPut)
	admin.HandleFunc("/mobile-users/{id:[0-9]+}", h.MobileUser.UpdatePhoto).Methods(http.MethodPatch)
	admin.HandleFunc("/mobile-users/{id:[0-9]+}", h.MobileUser.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/audit-logs", h.AuditLog.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", h.AuditLog.Get).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never need a matching route
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) throttled(route string, perMinute int, fn http.HandlerFunc) http.Handler {
	if r.rateLimiter == nil {
		return fn
	}
	return r.rateLimiter.PerMinute(route, perMinute)(fn)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for name, check := range r.checks {
		if err := check(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service unhealthy", status)
		return
	}
	response.Success(w, http.StatusOK, "ok", status)
}
