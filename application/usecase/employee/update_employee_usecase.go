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

type UpdateInput struct {
	Name  string
	Email string
	// Type is optional; when set it must match the stored discriminator.
	Type  string
	Level int
}

type UpdateEmployeeUseCase struct {
	repo      outbound.EmployeeRepository
	getter    *GetEmployeeUseCase
	publisher outbound.EventPublisher
	resource  Resource
	logger    logger.Logger
	now       func() time.Time
}

func NewUpdateEmployeeUseCase(
	repo outbound.EmployeeRepository,
	publisher outbound.EventPublisher,
	resource Resource,
	log logger.Logger,
) *UpdateEmployeeUseCase {
	return &UpdateEmployeeUseCase{
		repo:      repo,
		getter:    NewGetEmployeeUseCase(repo, resource),
		publisher: publisher,
		resource:  resource,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *UpdateEmployeeUseCase) Execute(ctx context.Context, id string, in UpdateInput) (*entity.Employee, error) {
	existing, err := uc.getter.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Type != "" && in.Type != existing.Type {
		return nil, ErrTypeImmutable
	}

	email := entity.NormalizeEmail(in.Email)
	owner, err := uc.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && owner != nil && owner.ID != existing.ID:
		return nil, ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, outbound.ErrEmployeeNotFound):
		return nil, fmt.Errorf("failed to check email owner: %w", err)
	}

	existing.ApplyUpdate(in.Name, email, in.Level)

	ok, err := uc.repo.Update(ctx, existing.ID, existing)
	if err != nil {
		if errors.Is(err, outbound.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	if !ok {
		return nil, ErrOperationFailed
	}

	msg := event.NewUpdated(uc.resource.Events.Updated, existing, uc.now())
	if err := publish(ctx, uc.publisher, uc.logger, msg, uc.resource.Queues.Updated, existing.ID); err != nil {
		return nil, err
	}

	return existing, nil
}
