package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

// CreateInput is the validated payload for a new record.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Type     string
	Level    int
}

type CreateEmployeeUseCase struct {
	repo        outbound.EmployeeRepository
	passwordSvc outbound.PasswordService
	publisher   outbound.EventPublisher
	resource    Resource
	logger      logger.Logger
	now         func() time.Time
}

func NewCreateEmployeeUseCase(
	repo outbound.EmployeeRepository,
	passwordSvc outbound.PasswordService,
	publisher outbound.EventPublisher,
	resource Resource,
	log logger.Logger,
) *CreateEmployeeUseCase {
	return &CreateEmployeeUseCase{
		repo:        repo,
		passwordSvc: passwordSvc,
		publisher:   publisher,
		resource:    resource,
		logger:      log,
		now:         time.Now,
	}
}

func (uc *CreateEmployeeUseCase) Execute(ctx context.Context, in CreateInput) (*entity.Employee, error) {
	if uc.resource.Scope != "" {
		in.Type = uc.resource.Scope
	}
	if !entity.IsKnownType(in.Type) {
		return nil, ErrInvalidType
	}

	email := entity.NormalizeEmail(in.Email)
	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := uc.passwordSvc.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := uc.repo.Create(ctx, entity.NewEmployee(in.Name, email, hashedPassword, in.Type, in.Level))
	if err != nil {
		if errors.Is(err, outbound.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	msg := event.NewCreated(uc.resource.Events.Created, created, uc.now())
	if err := publish(ctx, uc.publisher, uc.logger, msg, uc.resource.Queues.Created, created.ID); err != nil {
		return nil, err
	}

	return created, nil
}

// publish hands msg to the broker. The write it describes is already
// committed, so a failure is logged and surfaced but never rolled back.
func publish(ctx context.Context, publisher outbound.EventPublisher, log logger.Logger, msg event.Message, queue, id string) error {
	if err := publisher.Publish(ctx, msg, queue); err != nil {
		log.Error(ctx, "Event publish failed after committed write", err, map[string]interface{}{
			"queue":       queue,
			"event_type":  msg.Meta().EventType,
			"message_id":  msg.Meta().MessageID,
			"employee_id": id,
		})
		return fmt.Errorf("%w: %w", ErrEventPublishFailed, err)
	}
	return nil
}
