// Package middleware provides HTTP middleware and the request-context identity helpers
// shared by handlers and the authorization guards.
package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	sessiondomain "campus-clubs/backend/internal/session/domain"
	"campus-clubs/backend/internal/telemetry"
)

// PrincipalResolver resolves the authenticated principal from a request, or nil for anonymous.
type PrincipalResolver interface {
	Resolve(ctx context.Context, r *http.Request) *sessiondomain.Principal
}

// Auth returns middleware that resolves the principal once per request and stores it
// in the request context. Anonymous requests pass through with no principal set;
// rejecting them is the guards' job, not this middleware's.
func Auth(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver != nil {
				if p := resolver.Resolve(r.Context(), r); p != nil {
					r = r.WithContext(WithPrincipal(r.Context(), p))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the response status for logging and telemetry.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLog returns middleware that logs each request line after completion.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("http: %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// Trace returns middleware that opens an OTel span per request. tracer may be nil; the
// middleware then no-ops.
func Trace(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tracer == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))
			span.SetAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.Int("http.response.status_code", rec.status),
			)
		})
	}
}

// Activity returns middleware that emits a best-effort activity event per API request.
// emitter may be nil; the middleware then no-ops. skipPaths are not emitted (e.g. health probes).
func Activity(emitter telemetry.EventEmitter, skipPaths map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if emitter == nil || skipPaths[r.URL.Path] {
				return
			}
			var userID string
			if p := PrincipalFrom(r.Context()); p != nil {
				userID = p.ID
			}
			telemetry.EmitAsync(emitter, r.Context(), &telemetry.Event{
				UserID:    userID,
				EventType: "http_request",
				Source:    "api",
				Metadata: map[string]string{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      strconv.Itoa(rec.status),
					"duration_ms": strconv.FormatInt(time.Since(start).Milliseconds(), 10),
					"client_ip":   ClientIP(r),
				},
				CreatedAt: time.Now().UTC(),
			})
		})
	}
}
