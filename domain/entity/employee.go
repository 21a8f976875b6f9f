package entity

import (
	"strings"
	"time"
)

// Discriminator values stored in the type field.
const (
	TypeEmployee = "Employee"
	TypeManager  = "Manager"
)

const DefaultLevel = 1

// Employee is the single stored shape for both generic employees and managers.
// Type tells the two apart; Level is shared and its meaning depends on Type.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Type      string    `json:"type"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEmployee(name, email, passwordHash, employeeType string, level int) *Employee {
	if level == 0 {
		level = DefaultLevel
	}
	return &Employee{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Password: passwordHash,
		Type:     employeeType,
		Level:    level,
	}
}

func NewManager(name, email, passwordHash string, level int) *Employee {
	return NewEmployee(name, email, passwordHash, TypeManager, level)
}

func (e *Employee) IsManager() bool {
	return e.Type == TypeManager
}

// Is reports whether the record belongs to the given type scope. An empty
// scope matches every record.
func (e *Employee) Is(scope string) bool {
	return scope == "" || e.Type == scope
}

// ApplyUpdate mutates the editable fields. ID, Type, Password and CreatedAt
// are left untouched.
func (e *Employee) ApplyUpdate(name, email string, level int) {
	e.Name = strings.TrimSpace(name)
	e.Email = NormalizeEmail(email)
	if level != 0 {
		e.Level = level
	}
}

// Clone returns a copy so stores never hand out their internal pointers.
func (e *Employee) Clone() *Employee {
	c := *e
	return &c
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsKnownType(t string) bool {
	return t == TypeEmployee || t == TypeManager
}
