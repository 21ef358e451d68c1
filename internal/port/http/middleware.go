package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/auth"
	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ContextKey avoids collisions with other packages' context values.
type ContextKey string

const UserEmailCtxKey = ContextKey("user_email")

// userEmail returns the authenticated caller's email placed into the
// context by the auth middleware.
func userEmail(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailCtxKey).(string)
	return email
}

func authMiddleware(tokens *auth.TokenIssuer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization header is required"}, log)
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization header must be a bearer token"}, log)
				return
			}

			email, err := tokens.Verify(tokenString)
			if err != nil {
				log.Warnf("Rejected request with invalid token: %v", err)
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"}, log)
				return
			}

			ctx := context.WithValue(r.Context(), UserEmailCtxKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Infof("%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}

func traceMiddleware(next http.Handler) http.Handler {
	tr := otel.Tracer("bdrent-server/http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tr.Start(r.Context(), r.Method+" "+r.URL.Path)
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
