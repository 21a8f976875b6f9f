package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

func TestEmployeeRepository_CreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	a, err := repo.Create(ctx, entity.NewManager("Ana", "ana@x.com", "hash", 3))
	require.NoError(t, err)
	b, err := repo.Create(ctx, entity.NewEmployee("Bruno", "bruno@x.com", "hash", entity.TypeEmployee, 1))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	_, err := repo.Create(ctx, entity.NewManager("Ana", "ana@x.com", "hash", 3))
	require.NoError(t, err)

	_, err = repo.Create(ctx, entity.NewManager("Other", "ana@x.com", "hash", 3))
	assert.ErrorIs(t, err, outbound.ErrEmailAlreadyExists)

	exists, err := repo.ExistsByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmployeeRepository_UpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	created, err := repo.Create(ctx, entity.NewManager("Ana", "ana@x.com", "hash", 3))
	require.NoError(t, err)

	replacement := created.Clone()
	replacement.Name = "Ana Maria"
	replacement.ID = "ignored"
	replacement.CreatedAt = created.CreatedAt.Add(1000)

	ok, err := repo.Update(ctx, created.ID, replacement)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	ok, err = repo.Update(ctx, "missing", replacement)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmployeeRepository_DeleteAndTypeFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	m, err := repo.Create(ctx, entity.NewManager("Ana", "ana@x.com", "hash", 3))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entity.NewEmployee("Bruno", "bruno@x.com", "hash", entity.TypeEmployee, 1))
	require.NoError(t, err)

	managers, err := repo.GetByType(ctx, entity.TypeManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, m.ID, managers[0].ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ok, err := repo.Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, outbound.ErrEmployeeNotFound)

	ok, err = repo.Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmployeeRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	created, err := repo.Create(ctx, entity.NewManager("Ana", "ana@x.com", "hash", 3))
	require.NoError(t, err)
	created.Name = "mutated"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestEmployeeRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, entity.NewManager("Ana", "same@x.com", "hash", 3))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}
