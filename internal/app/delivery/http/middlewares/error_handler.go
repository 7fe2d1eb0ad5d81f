package middlewares

import (
	"carerouter-service/internal/pkg/exceptions"
	"carerouter-service/internal/pkg/utils"
	"net/http"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRecoveredPanic(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
