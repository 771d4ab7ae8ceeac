package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mullergauthier/HarmattanAI/internal/api/response"
)

// Recovery turns handler panics into a 500 envelope instead of a dropped
// connection, logging the stack.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.Error("panic recovered",
					"error", v,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError,
					"INTERNAL_ERROR", "An unexpected error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
