package employee

import (
	"context"
	"fmt"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

type ListEmployeesUseCase struct {
	repo     outbound.EmployeeRepository
	resource Resource
}

func NewListEmployeesUseCase(repo outbound.EmployeeRepository, resource Resource) *ListEmployeesUseCase {
	return &ListEmployeesUseCase{
		repo:     repo,
		resource: resource,
	}
}

// All lists every record visible to the resource.
func (uc *ListEmployeesUseCase) All(ctx context.Context) ([]*entity.Employee, error) {
	if uc.resource.Scope != "" {
		return uc.ByType(ctx, uc.resource.Scope)
	}
	employees, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (uc *ListEmployeesUseCase) ByType(ctx context.Context, employeeType string) ([]*entity.Employee, error) {
	employees, err := uc.repo.GetByType(ctx, employeeType)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by type: %w", err)
	}
	return employees, nil
}
