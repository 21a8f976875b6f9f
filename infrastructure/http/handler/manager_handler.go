package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/domain/entity"
	"github.com/vobe/staff-auth-service/infrastructure/http/middleware"
	"github.com/vobe/staff-auth-service/infrastructure/http/response"
	"github.com/vobe/staff-auth-service/infrastructure/http/validator"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

const managerResource = "Manager"

type ManagerHandler struct {
	base
	useCase inbound.ManagerManagementUseCase
}

func NewManagerHandler(
	useCase inbound.ManagerManagementUseCase,
	v *validator.Validator,
	log logger.Logger,
	exposeDetails bool,
) *ManagerHandler {
	return &ManagerHandler{
		base:    newBase(v, log, exposeDetails),
		useCase: useCase,
	}
}

func (h *ManagerHandler) RegisterRoutes(r *mux.Router, auth *middleware.AuthMiddleware) {
	r.Handle("/api/manager", auth.RequireAuthFunc(h.ListManagers)).Methods(http.MethodGet)
	r.HandleFunc("/api/manager", h.CreateManager).Methods(http.MethodPost)
	r.Handle("/api/manager/email/{email}", auth.RequireAuthFunc(h.GetManagerByEmail)).Methods(http.MethodGet)
	r.Handle("/api/manager/{id}", auth.RequireAuthFunc(h.GetManager)).Methods(http.MethodGet)
	r.Handle("/api/manager/{id}", auth.RequireAuthFunc(h.UpdateManager)).Methods(http.MethodPut)
	r.Handle("/api/manager/{id}", auth.RequireAuthFunc(h.DeleteManager)).Methods(http.MethodDelete)
}

func (h *ManagerHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.useCase.ListManagers(r.Context())
	if err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Success(w, managers)
}

func (h *ManagerHandler) GetManager(w http.ResponseWriter, r *http.Request) {
	manager, err := h.useCase.GetManager(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Success(w, manager)
}

func (h *ManagerHandler) GetManagerByEmail(w http.ResponseWriter, r *http.Request) {
	manager, err := h.useCase.GetManagerByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Success(w, manager)
}

func (h *ManagerHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateManagerRequest
	ok := h.decode(w, r, &req, func() {
		if req.Level == 0 {
			req.Level = entity.DefaultLevel
		}
	})
	if !ok {
		return
	}

	manager, err := h.useCase.CreateManager(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Created(w, "/api/manager/"+manager.ID, manager)
}

func (h *ManagerHandler) UpdateManager(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateManagerRequest
	if !h.decode(w, r, &req, nil) {
		return
	}

	manager, err := h.useCase.UpdateManager(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Success(w, manager)
}

func (h *ManagerHandler) DeleteManager(w http.ResponseWriter, r *http.Request) {
	if err := h.useCase.DeleteManager(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err, managerResource)
		return
	}
	response.Message(w, http.StatusOK, "Manager deleted successfully")
}
