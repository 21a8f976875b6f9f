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

const employeeResource = "Employee"

type EmployeeHandler struct {
	base
	useCase inbound.EmployeeManagementUseCase
}

func NewEmployeeHandler(
	useCase inbound.EmployeeManagementUseCase,
	v *validator.Validator,
	log logger.Logger,
	exposeDetails bool,
) *EmployeeHandler {
	return &EmployeeHandler{
		base:    newBase(v, log, exposeDetails),
		useCase: useCase,
	}
}

// RegisterRoutes mounts /api/employee. Creation is public, everything else
// needs a Bearer token. The email and type routes are registered before
// {id} so they win the match.
func (h *EmployeeHandler) RegisterRoutes(r *mux.Router, auth *middleware.AuthMiddleware) {
	r.Handle("/api/employee", auth.RequireAuthFunc(h.ListEmployees)).Methods(http.MethodGet)
	r.HandleFunc("/api/employee", h.CreateEmployee).Methods(http.MethodPost)
	r.Handle("/api/employee/email/{email}", auth.RequireAuthFunc(h.GetEmployeeByEmail)).Methods(http.MethodGet)
	r.Handle("/api/employee/type/{type}", auth.RequireAuthFunc(h.ListEmployeesByType)).Methods(http.MethodGet)
	r.Handle("/api/employee/{id}", auth.RequireAuthFunc(h.GetEmployee)).Methods(http.MethodGet)
	r.Handle("/api/employee/{id}", auth.RequireAuthFunc(h.UpdateEmployee)).Methods(http.MethodPut)
	r.Handle("/api/employee/{id}", auth.RequireAuthFunc(h.DeleteEmployee)).Methods(http.MethodDelete)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.useCase.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Success(w, employees)
}

func (h *EmployeeHandler) ListEmployeesByType(w http.ResponseWriter, r *http.Request) {
	employees, err := h.useCase.ListEmployeesByType(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Success(w, employees)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.useCase.GetEmployee(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Success(w, employee)
}

func (h *EmployeeHandler) GetEmployeeByEmail(w http.ResponseWriter, r *http.Request) {
	employee, err := h.useCase.GetEmployeeByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Success(w, employee)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateEmployeeRequest
	ok := h.decode(w, r, &req, func() {
		if req.Level == 0 {
			req.Level = entity.DefaultLevel
		}
	})
	if !ok {
		return
	}

	employee, err := h.useCase.CreateEmployee(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Created(w, "/api/employee/"+employee.ID, employee)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req inbound.UpdateEmployeeRequest
	if !h.decode(w, r, &req, nil) {
		return
	}

	employee, err := h.useCase.UpdateEmployee(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Success(w, employee)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.useCase.DeleteEmployee(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err, employeeResource)
		return
	}
	response.Message(w, http.StatusOK, "Employee deleted successfully")
}
