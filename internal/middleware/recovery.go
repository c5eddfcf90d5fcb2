package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"faktura-backend/pkg/utils"
)

// PanicRecovery converts handler panics into a JSON 500 instead of a dropped
// connection. If the panic fired mid-stream the status line is already gone,
// but for the JSON endpoints and the pre-body phase of PDF downloads this
// keeps the client informed.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
