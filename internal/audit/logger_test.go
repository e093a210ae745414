package audit

import (
	"context"
	"errors"
	"testing"

	"campus-clubs/backend/internal/audit/domain"
)

// mockAuditRepo implements repository.Repository for tests.
type mockAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	return m.entries, nil
}

func TestLogEvent_Persists(t *testing.T) {
	repo := &mockAuditRepo{}
	l := NewLogger(repo)

	l.LogEvent(context.Background(), "user-1", "email_worker.trigger", "email_worker", "10.0.0.1", `{"route":"admin"}`)

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" {
		t.Error("entry ID should be assigned")
	}
	if e.UserID != "user-1" || e.Action != "email_worker.trigger" || e.Resource != "email_worker" {
		t.Errorf("entry = %+v", e)
	}
	if e.IP != "10.0.0.1" {
		t.Errorf("IP = %q", e.IP)
	}
}

func TestLogEvent_UnknownIP(t *testing.T) {
	repo := &mockAuditRepo{}
	NewLogger(repo).LogEvent(context.Background(), "user-1", "a", "r", "", "")
	if repo.entries[0].IP != "unknown" {
		t.Errorf("IP = %q, want unknown", repo.entries[0].IP)
	}
}

func TestLogEvent_BestEffort(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("db down")}
	// Must not panic or propagate the error.
	NewLogger(repo).LogEvent(context.Background(), "user-1", "a", "r", "ip", "")
}

func TestLogEvent_NilRepo(t *testing.T) {
	NewLogger(nil).LogEvent(context.Background(), "user-1", "a", "r", "ip", "")
}
