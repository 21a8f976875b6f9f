// Package event defines the messages emitted to the broker after a committed
// write or a successful login. Delivery is at-least-once: consumers should
// dedupe on MessageID.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/vobe/staff-auth-service/domain/entity"
)

const (
	TypeEmployeeCreated = "EmployeeCreated"
	TypeEmployeeUpdated = "EmployeeUpdated"
	TypeEmployeeDeleted = "EmployeeDeleted"
	TypeManagerCreated  = "ManagerCreated"
	TypeManagerUpdated  = "ManagerUpdated"
	TypeManagerDeleted  = "ManagerDeleted"
	TypeUserLogin       = "UserLogin"
)

// Message is anything that can be handed to a publisher.
type Message interface {
	Meta() Envelope
}

// Envelope is the header shared by every message.
type Envelope struct {
	MessageID string    `json:"messageId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

func (e Envelope) Meta() Envelope {
	return e
}

func newEnvelope(eventType string, now time.Time) Envelope {
	return Envelope{
		MessageID: uuid.NewString(),
		EventType: eventType,
		Timestamp: now.UTC(),
	}
}

type EmployeeCreated struct {
	Envelope
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmployeeUpdated struct {
	Envelope
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Level int    `json:"level"`
}

type EmployeeDeleted struct {
	Envelope
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	DeletedAt time.Time `json:"deletedAt"`
}

type UserLogin struct {
	Envelope
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	LoginTime time.Time `json:"loginTime"`
	IPAddress string    `json:"ipAddress"`
}

func NewCreated(eventType string, e *entity.Employee, now time.Time) *EmployeeCreated {
	return &EmployeeCreated{
		Envelope:  newEnvelope(eventType, now),
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Type:      e.Type,
		Level:     e.Level,
		CreatedAt: e.CreatedAt,
	}
}

func NewUpdated(eventType string, e *entity.Employee, now time.Time) *EmployeeUpdated {
	return &EmployeeUpdated{
		Envelope: newEnvelope(eventType, now),
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Type:     e.Type,
		Level:    e.Level,
	}
}

func NewDeleted(eventType string, e *entity.Employee, now time.Time) *EmployeeDeleted {
	return &EmployeeDeleted{
		Envelope:  newEnvelope(eventType, now),
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Type:      e.Type,
		DeletedAt: now.UTC(),
	}
}

func NewUserLogin(e *entity.Employee, ip string, now time.Time) *UserLogin {
	if ip == "" {
		ip = "unknown"
	}
	return &UserLogin{
		Envelope:  newEnvelope(TypeUserLogin, now),
		UserID:    e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Type:      e.Type,
		LoginTime: now.UTC(),
		IPAddress: ip,
	}
}
