package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/application/usecase/auth"
	"github.com/vobe/staff-auth-service/domain/valueobject"
	"github.com/vobe/staff-auth-service/infrastructure/http/middleware"
	"github.com/vobe/staff-auth-service/infrastructure/http/response"
	"github.com/vobe/staff-auth-service/infrastructure/http/validator"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	"github.com/vobe/staff-auth-service/infrastructure/service/metrics"
)

// LoginObserver counts login attempts by outcome.
type LoginObserver interface {
	Login(outcome string)
}

type AuthHandler struct {
	base
	authUseCase inbound.AuthUseCase
	observer    LoginObserver
}

func NewAuthHandler(
	authUseCase inbound.AuthUseCase,
	v *validator.Validator,
	observer LoginObserver,
	log logger.Logger,
	exposeDetails bool,
) *AuthHandler {
	return &AuthHandler{
		base:        newBase(v, log, exposeDetails),
		authUseCase: authUseCase,
		observer:    observer,
	}
}

func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/login/healthy", h.Healthy).Methods(http.MethodGet)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if !h.decode(w, r, &req, nil) {
		h.observe(metrics.LoginBadRequest)
		return
	}
	req.IPAddress = middleware.ClientIP(r)

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		h.observe(loginOutcome(err))
		h.fail(w, r, err, "User")
		return
	}

	h.observe(metrics.LoginSuccess)
	response.Success(w, res)
}

func (h *AuthHandler) Healthy(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "healthy", "service": "login"})
}

func (h *AuthHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.Login(outcome)
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return metrics.LoginInvalid
	case errors.Is(err, auth.ErrTooManyAttempts):
		return metrics.LoginRateLimited
	case errors.Is(err, valueobject.ErrInvalidEmail), errors.Is(err, valueobject.ErrPasswordRequired):
		return metrics.LoginBadRequest
	default:
		return metrics.LoginServiceError
	}
}
