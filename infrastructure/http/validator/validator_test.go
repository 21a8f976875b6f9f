package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/staff-auth-service/application/port/inbound"
)

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Secret12!"))
	assert.False(t, ValidatePassword("Sh0rt!"))
	assert.False(t, ValidatePassword("alllower12!"))
	assert.False(t, ValidatePassword("ALLUPPER12!"))
	assert.False(t, ValidatePassword("NoDigits!!"))
	assert.False(t, ValidatePassword("NoSpecial12"))
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	valid := inbound.CreateEmployeeRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "Secret12!",
		Type:     "Employee",
		Level:    3,
	}
	require.NoError(t, v.Struct(valid))

	tests := []struct {
		name    string
		mutate  func(r *inbound.CreateEmployeeRequest)
		message string
	}{
		{"missing name", func(r *inbound.CreateEmployeeRequest) { r.Name = "" }, "name is required"},
		{"bad email", func(r *inbound.CreateEmployeeRequest) { r.Email = "nope" }, "Invalid email format"},
		{"weak password", func(r *inbound.CreateEmployeeRequest) { r.Password = "password12" },
			"Password must contain at least one uppercase letter, one lowercase letter, one digit and one special character"},
		{"password beyond bcrypt limit", func(r *inbound.CreateEmployeeRequest) { r.Password = "Secret12!" + strings.Repeat("a", 64) },
			"password must be at most 72 characters"},
		{"unknown type", func(r *inbound.CreateEmployeeRequest) { r.Type = "Director" }, "type must be one of: Employee, Manager"},
		{"level too high", func(r *inbound.CreateEmployeeRequest) { r.Level = 6 }, "level must be at most 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Struct(req)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidator_ManagerLevelRange(t *testing.T) {
	v := New()
	req := inbound.CreateManagerRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "Secret12!",
		Level:    10,
	}
	assert.NoError(t, v.Struct(req))

	req.Level = 11
	assert.EqualError(t, v.Struct(req), "level must be at most 10")
}
