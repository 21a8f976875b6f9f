package employee

import (
	"context"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

type useCases struct {
	create *CreateEmployeeUseCase
	update *UpdateEmployeeUseCase
	delete *DeleteEmployeeUseCase
	get    *GetEmployeeUseCase
	list   *ListEmployeesUseCase
}

func newUseCases(
	repo outbound.EmployeeRepository,
	passwordSvc outbound.PasswordService,
	publisher outbound.EventPublisher,
	resource Resource,
	log logger.Logger,
) useCases {
	return useCases{
		create: NewCreateEmployeeUseCase(repo, passwordSvc, publisher, resource, log),
		update: NewUpdateEmployeeUseCase(repo, publisher, resource, log),
		delete: NewDeleteEmployeeUseCase(repo, publisher, resource, log),
		get:    NewGetEmployeeUseCase(repo, resource),
		list:   NewListEmployeesUseCase(repo, resource),
	}
}

type EmployeeManagementUseCaseImpl struct {
	useCases
}

func NewEmployeeManagementUseCase(
	repo outbound.EmployeeRepository,
	passwordSvc outbound.PasswordService,
	publisher outbound.EventPublisher,
	queues outbound.QueueSet,
	log logger.Logger,
) inbound.EmployeeManagementUseCase {
	return &EmployeeManagementUseCaseImpl{
		useCases: newUseCases(repo, passwordSvc, publisher, EmployeeResource(queues), log),
	}
}

func (uc *EmployeeManagementUseCaseImpl) CreateEmployee(ctx context.Context, req inbound.CreateEmployeeRequest) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.create.Execute(ctx, CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     req.Type,
		Level:    req.Level,
	}))
}

func (uc *EmployeeManagementUseCaseImpl) UpdateEmployee(ctx context.Context, id string, req inbound.UpdateEmployeeRequest) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.update.Execute(ctx, id, UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Type:  req.Type,
		Level: req.Level,
	}))
}

func (uc *EmployeeManagementUseCaseImpl) DeleteEmployee(ctx context.Context, id string) error {
	return uc.delete.Execute(ctx, id)
}

func (uc *EmployeeManagementUseCaseImpl) GetEmployee(ctx context.Context, id string) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.get.ByID(ctx, id))
}

func (uc *EmployeeManagementUseCaseImpl) GetEmployeeByEmail(ctx context.Context, email string) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.get.ByEmail(ctx, email))
}

func (uc *EmployeeManagementUseCaseImpl) ListEmployees(ctx context.Context) ([]inbound.EmployeeResponse, error) {
	return toResponses(uc.list.All(ctx))
}

func (uc *EmployeeManagementUseCaseImpl) ListEmployeesByType(ctx context.Context, employeeType string) ([]inbound.EmployeeResponse, error) {
	return toResponses(uc.list.ByType(ctx, employeeType))
}

type ManagerManagementUseCaseImpl struct {
	useCases
}

func NewManagerManagementUseCase(
	repo outbound.EmployeeRepository,
	passwordSvc outbound.PasswordService,
	publisher outbound.EventPublisher,
	queues outbound.QueueSet,
	log logger.Logger,
) inbound.ManagerManagementUseCase {
	return &ManagerManagementUseCaseImpl{
		useCases: newUseCases(repo, passwordSvc, publisher, ManagerResource(queues), log),
	}
}

func (uc *ManagerManagementUseCaseImpl) CreateManager(ctx context.Context, req inbound.CreateManagerRequest) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.create.Execute(ctx, CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     entity.TypeManager,
		Level:    req.Level,
	}))
}

func (uc *ManagerManagementUseCaseImpl) UpdateManager(ctx context.Context, id string, req inbound.UpdateManagerRequest) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.update.Execute(ctx, id, UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Level: req.Level,
	}))
}

func (uc *ManagerManagementUseCaseImpl) DeleteManager(ctx context.Context, id string) error {
	return uc.delete.Execute(ctx, id)
}

func (uc *ManagerManagementUseCaseImpl) GetManager(ctx context.Context, id string) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.get.ByID(ctx, id))
}

func (uc *ManagerManagementUseCaseImpl) GetManagerByEmail(ctx context.Context, email string) (*inbound.EmployeeResponse, error) {
	return toResponse(uc.get.ByEmail(ctx, email))
}

func (uc *ManagerManagementUseCaseImpl) ListManagers(ctx context.Context) ([]inbound.EmployeeResponse, error) {
	return toResponses(uc.list.All(ctx))
}

func toResponse(e *entity.Employee, err error) (*inbound.EmployeeResponse, error) {
	if err != nil {
		return nil, err
	}
	res := inbound.NewEmployeeResponse(e)
	return &res, nil
}

func toResponses(employees []*entity.Employee, err error) ([]inbound.EmployeeResponse, error) {
	if err != nil {
		return nil, err
	}
	return inbound.NewEmployeeResponses(employees), nil
}
