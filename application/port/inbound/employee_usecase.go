package inbound

import (
	"context"
	"time"

	"github.com/vobe/staff-auth-service/domain/entity"
)

// Create Employee
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72,strongpassword"`
	Type     string `json:"type" validate:"required,oneof=Employee Manager"`
	Level    int    `json:"level" validate:"min=1,max=5"`
}

// Update Employee. Type is accepted for compatibility but cannot change.
type UpdateEmployeeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Type  string `json:"type" validate:"omitempty,oneof=Employee Manager"`
	Level int    `json:"level" validate:"omitempty,min=1,max=5"`
}

// Create Manager
type CreateManagerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72,strongpassword"`
	Level    int    `json:"level" validate:"min=1,max=10"`
}

// Update Manager
type UpdateManagerRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Level int    `json:"level" validate:"omitempty,min=1,max=10"`
}

type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEmployeeResponse(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Type:      e.Type,
		Level:     e.Level,
		CreatedAt: e.CreatedAt,
	}
}

func NewEmployeeResponses(employees []*entity.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		res = append(res, NewEmployeeResponse(e))
	}
	return res
}

// Employee Management Use Case Interface
type EmployeeManagementUseCase interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
	GetEmployee(ctx context.Context, id string) (*EmployeeResponse, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*EmployeeResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	ListEmployeesByType(ctx context.Context, employeeType string) ([]EmployeeResponse, error)
}

// Manager Management Use Case Interface. Every lookup is scoped to managers.
type ManagerManagementUseCase interface {
	CreateManager(ctx context.Context, req CreateManagerRequest) (*EmployeeResponse, error)
	UpdateManager(ctx context.Context, id string, req UpdateManagerRequest) (*EmployeeResponse, error)
	DeleteManager(ctx context.Context, id string) error
	GetManager(ctx context.Context, id string) (*EmployeeResponse, error)
	GetManagerByEmail(ctx context.Context, email string) (*EmployeeResponse, error)
	ListManagers(ctx context.Context) ([]EmployeeResponse, error)
}
