package error

import (
	"errors"
	"net/http"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/application/usecase/auth"
	"github.com/vobe/staff-auth-service/application/usecase/employee"
	"github.com/vobe/staff-auth-service/domain/valueobject"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Detail is the underlying error text, shown to clients only when error
// details are enabled.
func (e *AppError) Detail() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
)

func NewBadRequest(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: CodeTooManyRequests, Message: message, Status: http.StatusTooManyRequests}
}

func NewInternalServer(message string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError, Cause: cause}
}

// MapError translates a use case error into the response it should produce.
// resource names the entity in not-found and conflict messages.
func MapError(err error, resource string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, outbound.ErrEmployeeNotFound):
		return NewNotFound(resource + " not found")
	case errors.Is(err, outbound.ErrEmailAlreadyExists):
		return NewConflict("Email already exists")
	case errors.Is(err, employee.ErrIDRequired):
		return NewBadRequest(resource + " ID is required")
	case errors.Is(err, employee.ErrInvalidType):
		return NewBadRequest("Invalid employee type")
	case errors.Is(err, employee.ErrTypeImmutable):
		return NewBadRequest("Employee type cannot be changed")
	case errors.Is(err, employee.ErrOperationFailed):
		return NewBadRequest("Failed to apply changes to " + resource)
	case errors.Is(err, valueobject.ErrInvalidEmail):
		return NewBadRequest("Invalid email format")
	case errors.Is(err, valueobject.ErrPasswordRequired):
		return NewBadRequest("Password is required")
	case errors.Is(err, outbound.ErrPasswordTooLong):
		return NewBadRequest("Password must be at most 72 bytes")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return NewUnauthorized("Invalid credentials")
	case errors.Is(err, auth.ErrTooManyAttempts):
		return NewTooManyRequests("Too many login attempts. Please try again later.")
	case errors.Is(err, outbound.ErrEventPublishFailed):
		return NewInternalServer("Failed to publish event", err)
	default:
		return NewInternalServer("An unexpected error occurred", err)
	}
}
