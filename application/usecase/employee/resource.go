package employee

import (
	"errors"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
	"github.com/vobe/staff-auth-service/domain/event"
)

var (
	ErrEmployeeNotFound   = outbound.ErrEmployeeNotFound
	ErrEmailAlreadyExists = outbound.ErrEmailAlreadyExists
	ErrIDRequired         = errors.New("employee ID cannot be empty")
	ErrInvalidType        = errors.New("invalid employee type")
	ErrTypeImmutable      = errors.New("employee type cannot be changed")
	ErrOperationFailed    = errors.New("store did not apply the operation")
	ErrEventPublishFailed = outbound.ErrEventPublishFailed
)

// Resource describes one API-facing view over the shared collection: which
// records it may see and where its lifecycle events go.
type Resource struct {
	// Scope restricts lookups to one discriminator. Empty means any type.
	Scope  string
	Queues outbound.QueueSet
	Events EventNames
}

type EventNames struct {
	Created string
	Updated string
	Deleted string
}

func EmployeeResource(queues outbound.QueueSet) Resource {
	return Resource{
		Queues: queues,
		Events: EventNames{
			Created: event.TypeEmployeeCreated,
			Updated: event.TypeEmployeeUpdated,
			Deleted: event.TypeEmployeeDeleted,
		},
	}
}

func ManagerResource(queues outbound.QueueSet) Resource {
	return Resource{
		Scope:  entity.TypeManager,
		Queues: queues,
		Events: EventNames{
			Created: event.TypeManagerCreated,
			Updated: event.TypeManagerUpdated,
			Deleted: event.TypeManagerDeleted,
		},
	}
}
