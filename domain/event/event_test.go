package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/staff-auth-service/domain/entity"
)

func TestNewCreated_JSONShape(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	e := &entity.Employee{
		ID:        "abc",
		Name:      "Ana",
		Email:     "ana@x.com",
		Type:      entity.TypeManager,
		Level:     3,
		CreatedAt: now,
	}

	msg := NewCreated(TypeManagerCreated, e, now)
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "ManagerCreated", decoded["eventType"])
	assert.Equal(t, "abc", decoded["id"])
	assert.Equal(t, "Manager", decoded["type"])
	assert.EqualValues(t, 3, decoded["level"])
	assert.NotEmpty(t, decoded["messageId"])
	assert.Equal(t, "2025-03-04T05:06:07Z", decoded["timestamp"])
	assert.NotContains(t, decoded, "password")
}

func TestMessageIDsAreUnique(t *testing.T) {
	e := &entity.Employee{ID: "abc"}
	now := time.Now()

	a := NewDeleted(TypeEmployeeDeleted, e, now)
	b := NewDeleted(TypeEmployeeDeleted, e, now)

	assert.NotEqual(t, a.Meta().MessageID, b.Meta().MessageID)
}

func TestNewUserLogin_DefaultsIP(t *testing.T) {
	msg := NewUserLogin(&entity.Employee{ID: "abc"}, "", time.Now())

	assert.Equal(t, "unknown", msg.IPAddress)
	assert.Equal(t, TypeUserLogin, msg.EventType)
}
