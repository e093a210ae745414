package mailer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"campus-clubs/backend/internal/audit"
	"campus-clubs/backend/internal/platform/authz"
	"campus-clubs/backend/internal/server/middleware"
	"campus-clubs/backend/internal/telemetry"
)

const (
	// triggeredMessage is the success message for both trigger routes.
	triggeredMessage = "Email worker triggered"
	// unknownErrorMessage substitutes for remote error bodies that cannot be parsed.
	unknownErrorMessage = "Unknown error"
	// notConfiguredMessage is returned when required worker configuration is missing.
	notConfiguredMessage = "Email worker is not configured"
	// unreachableMessage is returned when the trigger call could not be established.
	unreachableMessage = "Failed to reach email worker"
)

// successEnvelope is the JSON shape of a successful trigger response.
type successEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// errorEnvelope is the JSON shape of a failed trigger response. Details is only
// populated on the send-emails route.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Handler serves the two email-worker trigger routes. Both run the same dispatch and
// normalization; they differ only in the guard applied first.
type Handler struct {
	client   *Client
	admins   authz.PlatformAdminGetter
	auditor  audit.AuditLogger
	emitter  telemetry.EventEmitter
	triggers metric.Int64Counter
}

// NewHandler returns a Handler. auditor and emitter may be nil (best-effort concerns).
func NewHandler(client *Client, admins authz.PlatformAdminGetter, auditor audit.AuditLogger, emitter telemetry.EventEmitter) *Handler {
	triggers, err := otel.Meter("campus-clubs/mailer").Int64Counter("email_worker.triggers")
	if err != nil {
		log.Printf("mailer: trigger counter: %v", err)
	}
	return &Handler{client: client, admins: admins, auditor: auditor, emitter: emitter, triggers: triggers}
}

// TriggerEmailWorker handles POST /api/admin/trigger-email-worker. Platform admin only.
func (h *Handler) TriggerEmailWorker(w http.ResponseWriter, r *http.Request) {
	_, err := authz.RequirePlatformAdmin(r.Context(), h.admins)
	if authz.WriteRedirect(w, r, err) {
		return
	}
	h.trigger(w, r, "admin", false)
}

// SendEmails handles POST /api/send-emails. Any authenticated user.
func (h *Handler) SendEmails(w http.ResponseWriter, r *http.Request) {
	_, err := authz.RequireUser(r.Context(), "")
	if authz.WriteRedirect(w, r, err) {
		return
	}
	h.trigger(w, r, "user", true)
}

// trigger dispatches once to the worker and normalizes the outcome into the response
// envelope. includeDetails controls the details field on error payloads.
func (h *Handler) trigger(w http.ResponseWriter, r *http.Request, route string, includeDetails bool) {
	ctx := r.Context()
	out, err := h.client.Trigger(ctx)
	if err != nil {
		h.count(ctx, route, "error")
		if err == ErrNotConfigured {
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: notConfiguredMessage})
			return
		}
		log.Printf("mailer: %v", err)
		env := errorEnvelope{Error: unreachableMessage}
		if includeDetails {
			env.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, env)
		return
	}

	h.record(ctx, r, route, out)

	if !out.Success() {
		var parsed map[string]any
		if json.Unmarshal(out.Body, &parsed) != nil || parsed == nil {
			writeJSON(w, out.StatusCode, errorEnvelope{Error: unknownErrorMessage})
			return
		}
		msg, _ := parsed["error"].(string)
		if msg == "" {
			msg = unknownErrorMessage
		}
		env := errorEnvelope{Error: msg}
		if includeDetails {
			env.Details = parsed
		}
		writeJSON(w, out.StatusCode, env)
		return
	}

	if !json.Valid(out.Body) || len(out.Body) == 0 {
		// The worker was triggered; it just answered with nothing parsable.
		writeJSON(w, http.StatusOK, successEnvelope{Success: true, Message: triggeredMessage})
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Message: triggeredMessage, Result: out.Body})
}

// record writes the audit entry and activity event for a completed dispatch. Best-effort.
func (h *Handler) record(ctx context.Context, r *http.Request, route string, out *Outcome) {
	h.count(ctx, route, resultLabel(out))
	var userID string
	if p := middleware.PrincipalFrom(ctx); p != nil {
		userID = p.ID
	}
	if h.auditor != nil {
		meta, _ := json.Marshal(map[string]any{"route": route, "remote_status": out.StatusCode})
		h.auditor.LogEvent(ctx, userID, "email_worker.trigger", "email_worker", middleware.ClientIP(r), string(meta))
	}
	telemetry.EmitAsync(h.emitter, ctx, &telemetry.Event{
		UserID:    userID,
		EventType: "email_worker_trigger",
		Source:    "mailer",
		Metadata:  map[string]string{"route": route, "result": resultLabel(out)},
		CreatedAt: time.Now().UTC(),
	})
}

func (h *Handler) count(ctx context.Context, route, result string) {
	if h.triggers == nil {
		return
	}
	h.triggers.Add(ctx, 1,
		metric.WithAttributes(attribute.String("route", route), attribute.String("result", result)))
}

func resultLabel(out *Outcome) string {
	if out.Success() {
		return "success"
	}
	return "remote_error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("mailer: write response: %v", err)
	}
}
