package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

type GetEmployeeUseCase struct {
	repo     outbound.EmployeeRepository
	resource Resource
}

func NewGetEmployeeUseCase(repo outbound.EmployeeRepository, resource Resource) *GetEmployeeUseCase {
	return &GetEmployeeUseCase{
		repo:     repo,
		resource: resource,
	}
}

func (uc *GetEmployeeUseCase) ByID(ctx context.Context, id string) (*entity.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequired
	}
	e, err := uc.repo.GetByID(ctx, id)
	return uc.scoped(e, err)
}

func (uc *GetEmployeeUseCase) ByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	e, err := uc.repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	return uc.scoped(e, err)
}

// scoped hides records of another type behind a not-found.
func (uc *GetEmployeeUseCase) scoped(e *entity.Employee, err error) (*entity.Employee, error) {
	if err != nil {
		if errors.Is(err, outbound.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	if e == nil || !e.Is(uc.resource.Scope) {
		return nil, ErrEmployeeNotFound
	}
	return e, nil
}
