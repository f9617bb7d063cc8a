package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
)

type fakeStore struct {
	entries []models.AuditLogEntry
	err     error
}

func (f *fakeStore) Insert(_ context.Context, e *models.AuditLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

func TestRecorderFinalizeOnce(t *testing.T) {
	store := &fakeStore{}
	rec := Begin(store, zap.NewNop(), nil, "1.2.3.4", "curl", "GET", "/api/v1/buildings")

	rec.Finalize(context.Background())
	rec.Finalize(context.Background())
	rec.Finalize(context.Background())

	if len(store.entries) != 1 {
		t.Fatalf("writes = %d, want exactly 1", len(store.entries))
	}
	e := store.entries[0]
	if e.IP != "1.2.3.4" || e.Method != "GET" || e.Action != "/api/v1/buildings" {
		t.Errorf("request metadata not carried: %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}
}

func TestRecorderRedactsBody(t *testing.T) {
	store := &fakeStore{}
	rec := Begin(store, zap.NewNop(), nil, "", "", "POST", "/api/v1/auth/login")

	rec.SetBody(map[string]any{"email": "a@b.c", "password": "hunter2"})
	rec.Finalize(context.Background())

	body := store.entries[0].Body
	if strings.Contains(body, "hunter2") {
		t.Errorf("body leaked the password: %s", body)
	}
	if !strings.Contains(body, Marker) {
		t.Errorf("body missing redaction marker: %s", body)
	}
	if strings.Contains(body, `<`) {
		t.Errorf("marker was HTML-escaped in storage: %s", body)
	}
	if !strings.Contains(body, "a@b.c") {
		t.Errorf("body lost non-sensitive fields: %s", body)
	}
}

func TestRecorderLastWriteWins(t *testing.T) {
	store := &fakeStore{}
	rec := Begin(store, zap.NewNop(), nil, "", "", "PUT", "/api/v1/roles/x")

	rec.SetAfter(map[string]any{"attempt": 1})
	rec.SetAfter(map[string]any{"attempt": 2})
	rec.SetDescription("first")
	rec.SetDescription("second")
	rec.Finalize(context.Background())

	e := store.entries[0]
	if strings.Contains(e.After, `"attempt":1`) {
		t.Errorf("stale after snapshot kept: %s", e.After)
	}
	if !strings.Contains(e.After, `"attempt":2`) {
		t.Errorf("latest after snapshot missing: %s", e.After)
	}
	if e.Description != "second" {
		t.Errorf("description = %q, want %q", e.Description, "second")
	}
}

func TestRecorderSetActor(t *testing.T) {
	store := &fakeStore{}
	rec := Begin(store, zap.NewNop(), nil, "", "", "POST", "/api/v1/auth/login")

	userID := uuid.New()
	rec.SetActor(userID)
	rec.Finalize(context.Background())

	e := store.entries[0]
	if e.UserID == nil || *e.UserID != userID {
		t.Errorf("user_id = %v, want %s", e.UserID, userID)
	}
}

func TestRecorderStoreFailureDoesNotPanic(t *testing.T) {
	store := &fakeStore{err: errors.New("insert failed")}
	rec := Begin(store, zap.NewNop(), nil, "", "", "GET", "/api/v1/logs")

	rec.Finalize(context.Background())
	rec.Finalize(context.Background())

	if len(store.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(store.entries))
	}
}
