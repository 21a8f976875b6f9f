package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vobe/staff-auth-service/infrastructure/http/response"
	"github.com/vobe/staff-auth-service/infrastructure/http/validator"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	apperror "github.com/vobe/staff-auth-service/pkg/error"
)

const maxBodyBytes = 1 << 20

// base carries what every handler needs to decode requests and report errors.
type base struct {
	validator     *validator.Validator
	logger        logger.Logger
	exposeDetails bool
}

func newBase(v *validator.Validator, log logger.Logger, exposeDetails bool) base {
	if v == nil {
		v = validator.New()
	}
	return base{validator: v, logger: log, exposeDetails: exposeDetails}
}

// decode reads a JSON body into dst and validates it. It writes the 400
// response itself and reports false on failure.
func (b base) decode(w http.ResponseWriter, r *http.Request, dst interface{}, defaults func()) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "Request body is required")
			return false
		}
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if defaults != nil {
		defaults()
	}
	if err := b.validator.Struct(dst); err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	return true
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error, resource string) {
	appErr := apperror.MapError(err, resource)
	if appErr.Status >= http.StatusInternalServerError {
		b.logger.Error(r.Context(), "Request failed", err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}
	response.AppError(w, appErr, b.exposeDetails)
}
