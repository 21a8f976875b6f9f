package response

import (
	"encoding/json"
	"net/http"

	apperror "github.com/vobe/staff-auth-service/pkg/error"
)

// ErrorBody is the payload of every non-2xx response. Error carries the
// underlying failure and is only set when details are exposed.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, location string, data interface{}) {
	w.Header().Set("Location", location)
	WriteJSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorBody{Message: message})
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	Message(w, statusCode, message)
}

// AppError writes a mapped error. Only 5xx responses carry the detail.
func AppError(w http.ResponseWriter, err *apperror.AppError, exposeDetails bool) {
	body := ErrorBody{Message: err.Message}
	if exposeDetails && err.Status >= http.StatusInternalServerError {
		body.Error = err.Detail()
	}
	if err.Status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "900")
	}
	WriteJSON(w, err.Status, body)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
