package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/vobe/staff-auth-service/infrastructure/http/response"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error(r.Context(), "Panic while serving request", fmt.Errorf("%v", rec), map[string]interface{}{
					"method": r.Method,
					"path":   r.URL.Path,
					"stack":  string(debug.Stack()),
				})
				response.InternalServerError(w, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
