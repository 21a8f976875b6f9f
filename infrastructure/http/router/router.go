package router

import (
	"net/http"
	"net/netip"

	"github.com/gorilla/mux"

	"github.com/vobe/staff-auth-service/infrastructure/http/handler"
	"github.com/vobe/staff-auth-service/infrastructure/http/middleware"
	"github.com/vobe/staff-auth-service/infrastructure/http/response"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

type Options struct {
	Employees *handler.EmployeeHandler
	Managers  *handler.ManagerHandler
	Auth      *handler.AuthHandler
	Health    *handler.HealthHandler

	AuthMiddleware *middleware.AuthMiddleware
	Logger         logger.Logger
	Observer       middleware.HTTPObserver
	// Metrics is served at /metrics when set.
	Metrics http.Handler

	CorrelationIDHeader  string
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
}

// New builds the full HTTP stack. From the outside in: correlation id,
// recovery, client address, CORS, then the mux with request logging on every
// matched route.
func New(opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.Use(middleware.RequestLogging(opts.Logger, opts.Observer))

	opts.Employees.RegisterRoutes(r, opts.AuthMiddleware)
	opts.Managers.RegisterRoutes(r, opts.AuthMiddleware)
	opts.Auth.RegisterRoutes(r)
	opts.Health.RegisterRoutes(r)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}

	var h http.Handler = r
	if opts.CORSEnabled {
		h = middleware.CORS(opts.CORSAllowedOrigins, opts.CORSAllowCredentials)(h)
	}
	h = middleware.RealIP(opts.TrustedProxies)(h)
	h = middleware.Recovery(opts.Logger)(h)
	return middleware.CorrelationID(opts.CorrelationIDHeader)(h)
}
