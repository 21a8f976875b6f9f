// Package memory keeps employees in process memory. It backs local runs with
// STORE_DRIVER=memory and the use-case and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*entity.Employee
	now       func() time.Time
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[string]*entity.Employee),
		now:       time.Now,
	}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*entity.Employee, error) {
	return r.filter(func(*entity.Employee) bool { return true }), nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, outbound.ErrEmployeeNotFound
	}
	return e.Clone(), nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e := r.findByEmail(email); e != nil {
		return e.Clone(), nil
	}
	return nil, outbound.ErrEmployeeNotFound
}

func (r *EmployeeRepository) GetByType(ctx context.Context, employeeType string) ([]*entity.Employee, error) {
	return r.filter(func(e *entity.Employee) bool { return e.Type == employeeType }), nil
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *entity.Employee) (*entity.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByEmail(employee.Email) != nil {
		return nil, outbound.ErrEmailAlreadyExists
	}

	stored := employee.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC()
	r.employees[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, employee *entity.Employee) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.employees[id]
	if !ok {
		return false, nil
	}
	if owner := r.findByEmail(employee.Email); owner != nil && owner.ID != id {
		return false, outbound.ErrEmailAlreadyExists
	}

	replacement := employee.Clone()
	replacement.ID = current.ID
	replacement.CreatedAt = current.CreatedAt
	r.employees[id] = replacement

	return true, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return false, nil
	}
	delete(r.employees, id)
	return true, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findByEmail(email) != nil, nil
}

// findByEmail expects r.mu to be held.
func (r *EmployeeRepository) findByEmail(email string) *entity.Employee {
	for _, e := range r.employees {
		if e.Email == email {
			return e
		}
	}
	return nil
}

func (r *EmployeeRepository) filter(keep func(*entity.Employee) bool) []*entity.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*entity.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if keep(e) {
			res = append(res, e.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res
}
