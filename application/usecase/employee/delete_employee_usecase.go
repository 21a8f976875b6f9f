package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

type DeleteEmployeeUseCase struct {
	repo      outbound.EmployeeRepository
	getter    *GetEmployeeUseCase
	publisher outbound.EventPublisher
	resource  Resource
	logger    logger.Logger
	now       func() time.Time
}

func NewDeleteEmployeeUseCase(
	repo outbound.EmployeeRepository,
	publisher outbound.EventPublisher,
	resource Resource,
	log logger.Logger,
) *DeleteEmployeeUseCase {
	return &DeleteEmployeeUseCase{
		repo:      repo,
		getter:    NewGetEmployeeUseCase(repo, resource),
		publisher: publisher,
		resource:  resource,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *DeleteEmployeeUseCase) Execute(ctx context.Context, id string) error {
	existing, err := uc.getter.ByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := uc.repo.Delete(ctx, existing.ID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if !ok {
		return ErrOperationFailed
	}

	msg := event.NewDeleted(uc.resource.Events.Deleted, existing, uc.now())
	return publish(ctx, uc.publisher, uc.logger, msg, uc.resource.Queues.Deleted, existing.ID)
}
