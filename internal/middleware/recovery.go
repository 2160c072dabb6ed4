package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
)

// Recovery turns a panicking handler into a 500 response. API clients get a
// JSON body; pages get plain text, as other page failures do.
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
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
				id := GetRequestID(r.Context())
				log.Error("panic recovered",
					zap.Any("error", rec),
					zap.String("request_id", id),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				if !wantsJSON(r) {
					http.Error(w, "Internal Server Error (request id "+id+")", http.StatusInternalServerError)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{
					"error":      "internal server error",
					"request_id": id,
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
