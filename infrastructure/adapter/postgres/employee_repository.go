package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

const uniqueViolation = "23505"

const selectEmployee = `
		SELECT id, name, email, password, type, level, created_at
		FROM employees`

type EmployeeRepositoryAdapter struct {
	db  *sql.DB
	now func() time.Time
}

func NewEmployeeRepositoryAdapter(db *sql.DB) *EmployeeRepositoryAdapter {
	return &EmployeeRepositoryAdapter{
		db:  db,
		now: time.Now,
	}
}

func (r *EmployeeRepositoryAdapter) GetAll(ctx context.Context) ([]*entity.Employee, error) {
	return r.query(ctx, selectEmployee+` ORDER BY created_at, id`)
}

func (r *EmployeeRepositoryAdapter) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, outbound.ErrEmployeeNotFound
	}
	return r.queryRow(ctx, selectEmployee+` WHERE id = $1`, id)
}

func (r *EmployeeRepositoryAdapter) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return r.queryRow(ctx, selectEmployee+` WHERE email = $1 LIMIT 1`, email)
}

func (r *EmployeeRepositoryAdapter) GetByType(ctx context.Context, employeeType string) ([]*entity.Employee, error) {
	return r.query(ctx, selectEmployee+` WHERE type = $1 ORDER BY created_at, id`, employeeType)
}

func (r *EmployeeRepositoryAdapter) Create(ctx context.Context, employee *entity.Employee) (*entity.Employee, error) {
	if employee == nil {
		return nil, fmt.Errorf("employee cannot be nil")
	}

	stored := employee.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO employees (id, name, email, password, type, level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		stored.ID,
		stored.Name,
		stored.Email,
		stored.Password,
		stored.Type,
		stored.Level,
		stored.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, outbound.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return stored, nil
}

// Update rewrites every mutable column. id and created_at are never touched.
func (r *EmployeeRepositoryAdapter) Update(ctx context.Context, id string, employee *entity.Employee) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	query := `
		UPDATE employees
		SET name = $2, email = $3, password = $4, type = $5, level = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		id,
		employee.Name,
		employee.Email,
		employee.Password,
		employee.Type,
		employee.Level,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, outbound.ErrEmailAlreadyExists
		}
		return false, fmt.Errorf("failed to update employee: %w", err)
	}

	return affected(res)
}

func (r *EmployeeRepositoryAdapter) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}

	return affected(res)
}

func (r *EmployeeRepositoryAdapter) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepositoryAdapter) queryRow(ctx context.Context, query string, args ...interface{}) (*entity.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepositoryAdapter) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	res := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Password, &e.Type, &e.Level, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

var _ outbound.EmployeeRepository = (*EmployeeRepositoryAdapter)(nil)
