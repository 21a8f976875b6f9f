package outbound

import (
	"context"
	"errors"

	"github.com/vobe/staff-auth-service/domain/entity"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// EmployeeRepository persists employees and managers in one collection.
// Implementations must be safe for concurrent use.
type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]*entity.Employee, error)
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	GetByType(ctx context.Context, employeeType string) ([]*entity.Employee, error)
	// Create assigns ID and CreatedAt and returns the stored record.
	Create(ctx context.Context, employee *entity.Employee) (*entity.Employee, error)
	// Update replaces the record at id. It reports false when nothing matched.
	Update(ctx context.Context, id string, employee *entity.Employee) (bool, error)
	// Delete hard-deletes the record at id. It reports false when nothing matched.
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
