package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vobe/staff-auth-service/application/port/outbound"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
		assert.NotContains(t, hash, "Str0ng!Pass")
	})

	t.Run("HashIsSalted", func(t *testing.T) {
		a, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		b, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("HashEmptyPassword", func(t *testing.T) {
		_, err := service.HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("HashPasswordAtBcryptLimit", func(t *testing.T) {
		_, err := service.HashPassword(strings.Repeat("a", outbound.MaxPasswordBytes))
		require.NoError(t, err)

		_, err = service.HashPassword(strings.Repeat("a", outbound.MaxPasswordBytes+1))
		assert.ErrorIs(t, err, outbound.ErrPasswordTooLong)

		// Multi-byte characters count by bytes, not runes.
		_, err = service.HashPassword(strings.Repeat("é", 40))
		assert.ErrorIs(t, err, outbound.ErrPasswordTooLong)
	})

	t.Run("VerifyPassword", func(t *testing.T) {
		hash, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)

		ok, err := service.VerifyPassword("Str0ng!Pass", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("VerifyWrongPassword", func(t *testing.T) {
		hash, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)

		ok, err := service.VerifyPassword("Wr0ng!Pass", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("VerifyMalformedHash", func(t *testing.T) {
		ok, err := service.VerifyPassword("Str0ng!Pass", "not-a-bcrypt-digest")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("VerifyEmptyPassword", func(t *testing.T) {
		hash, err := service.HashPassword("Str0ng!Pass")
		require.NoError(t, err)

		ok, err := service.VerifyPassword("", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNewBcryptPasswordService_CostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordService(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordService(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptPasswordService(12).cost)
}
