package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentials(t *testing.T) {
	c, err := NewCredentials(" Ana@X.com ", "Secret12!@")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", c.Email())
	assert.Equal(t, "Secret12!@", c.Password())

	_, err = NewCredentials("not-an-email", "Secret12!@")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewCredentials("ana@x.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAccessToken_ExpiresIn(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := NewAccessToken("t", now.Add(time.Hour))

	assert.Equal(t, time.Hour, tok.ExpiresIn(now))
	assert.Equal(t, time.Duration(0), tok.ExpiresIn(now.Add(2*time.Hour)))
}
