package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vobe/staff-auth-service/infrastructure/http/response"
)

type HealthHandler struct {
	service     string
	environment string
	startedAt   time.Time
}

func NewHealthHandler(service, environment string) *HealthHandler {
	return &HealthHandler{
		service:     service,
		environment: environment,
		startedAt:   time.Now(),
	}
}

func (h *HealthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/", h.Info).Methods(http.MethodGet)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"status":    "healthy",
		"service":   h.service,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Info lists the public surface of the service.
func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"service":     h.service,
		"environment": h.environment,
		"endpoints": map[string][]string{
			"employee": {
				"GET /api/employee",
				"GET /api/employee/{id}",
				"GET /api/employee/email/{email}",
				"GET /api/employee/type/{type}",
				"POST /api/employee",
				"PUT /api/employee/{id}",
				"DELETE /api/employee/{id}",
			},
			"manager": {
				"GET /api/manager",
				"GET /api/manager/{id}",
				"GET /api/manager/email/{email}",
				"POST /api/manager",
				"PUT /api/manager/{id}",
				"DELETE /api/manager/{id}",
			},
			"auth": {
				"POST /login",
				"GET /login/healthy",
			},
			"ops": {
				"GET /health",
				"GET /metrics",
			},
		},
	})
}
