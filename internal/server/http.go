// Package server assembles the HTTP API: routes, middleware chain and the listener.
package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"campus-clubs/backend/internal/admin"
	"campus-clubs/backend/internal/auth"
	"campus-clubs/backend/internal/club"
	"campus-clubs/backend/internal/clubrequest"
	"campus-clubs/backend/internal/event"
	"campus-clubs/backend/internal/health"
	"campus-clubs/backend/internal/mailer"
	"campus-clubs/backend/internal/server/middleware"
	"campus-clubs/backend/internal/telemetry"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Club        *club.Handler
	Event       *event.Handler
	ClubRequest *clubrequest.Handler
	Admin       *admin.Handler
	Mailer      *mailer.Handler
	Health      *health.Handler
}

// NewRouter mounts all routes and wraps them in the middleware chain. resolver, tracer
// and emitter may be nil.
func NewRouter(h Handlers, resolver middleware.PrincipalResolver, tracer trace.Tracer, emitter telemetry.EventEmitter) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	mux.HandleFunc("GET /api/clubs", h.Club.List)
	mux.HandleFunc("GET /api/clubs/{id}", h.Club.Get)
	mux.HandleFunc("GET /api/clubs/{id}/members", h.Club.Members)

	mux.HandleFunc("GET /api/events", h.Event.Search)

	mux.HandleFunc("POST /api/club-requests", h.ClubRequest.Submit)
	mux.HandleFunc("GET /api/club-requests", h.ClubRequest.ListOwn)

	mux.HandleFunc("GET /api/admin/club-requests", h.Admin.ListPendingRequests)
	mux.HandleFunc("POST /api/admin/club-requests/{id}/review", h.Admin.ReviewRequest)
	mux.HandleFunc("GET /api/admin/audit-logs", h.Admin.ListAuditLogs)

	mux.HandleFunc("POST /api/admin/trigger-email-worker", h.Mailer.TriggerEmailWorker)
	mux.HandleFunc("POST /api/send-emails", h.Mailer.SendEmails)

	skip := map[string]bool{"/healthz": true, "/readyz": true}

	// Auth sits inside Trace so spans cover resolution, and outside Activity so
	// activity events carry the resolved principal.
	var handler http.Handler = mux
	handler = middleware.Activity(emitter, skip)(handler)
	handler = middleware.Auth(resolver)(handler)
	handler = middleware.Trace(tracer)(handler)
	handler = middleware.RequestLog(handler)
	return handler
}

// New returns an http.Server for the router with the usual timeouts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Shutdown drains the server with a bounded grace period.
func Shutdown(srv *http.Server, grace time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(ctx)
}
