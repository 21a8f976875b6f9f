package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEmployee(t *testing.T) {
	e := NewEmployee("  Bruno ", " Bruno@Example.COM ", "hash", TypeEmployee, 0)

	assert.Equal(t, "Bruno", e.Name)
	assert.Equal(t, "bruno@example.com", e.Email)
	assert.Equal(t, "hash", e.Password)
	assert.Equal(t, TypeEmployee, e.Type)
	assert.Equal(t, DefaultLevel, e.Level)
	assert.Empty(t, e.ID)
	assert.False(t, e.IsManager())
}

func TestNewManager(t *testing.T) {
	m := NewManager("Ana", "ana@x.com", "hash", 3)

	assert.Equal(t, TypeManager, m.Type)
	assert.Equal(t, 3, m.Level)
	assert.True(t, m.IsManager())
}

func TestEmployee_Is(t *testing.T) {
	m := NewManager("Ana", "ana@x.com", "hash", 3)
	e := NewEmployee("Bruno", "bruno@x.com", "hash", TypeEmployee, 2)

	assert.True(t, m.Is(""))
	assert.True(t, m.Is(TypeManager))
	assert.False(t, e.Is(TypeManager))
}

func TestEmployee_ApplyUpdateKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := &Employee{
		ID:        "id-1",
		Name:      "Ana",
		Email:     "ana@x.com",
		Password:  "hash",
		Type:      TypeManager,
		Level:     3,
		CreatedAt: created,
	}

	e.ApplyUpdate("Ana Maria", "ANA.M@x.com", 7)

	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, "Ana Maria", e.Name)
	assert.Equal(t, "ana.m@x.com", e.Email)
	assert.Equal(t, 7, e.Level)
	assert.Equal(t, TypeManager, e.Type)
	assert.Equal(t, "hash", e.Password)
	assert.Equal(t, created, e.CreatedAt)
}

func TestEmployee_Clone(t *testing.T) {
	e := NewManager("Ana", "ana@x.com", "hash", 3)
	c := e.Clone()
	c.Name = "Other"

	assert.Equal(t, "Ana", e.Name)
}
