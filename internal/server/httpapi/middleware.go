package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/mzaikin/rosterd/internal/server/auth"
)

// withAuth verifies the Bearer token on every request and stores the
// subject in the context for audit attribution. A server built without a
// secret passes requests through untouched.
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.jwtSecret == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{ErrorKind: "unauthorized", Details: "missing bearer token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{ErrorKind: "unauthorized", Details: "invalid token"})
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithSubject(r.Context(), userID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}
