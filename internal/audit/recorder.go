package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/models"
)

// Store persists finished audit entries.
type Store interface {
	Insert(ctx context.Context, e *models.AuditLogEntry) error
}

// Recorder accumulates one audit entry over the life of a single request.
// Begin it when the request arrives, set snapshots as the handler
// progresses, and Finalize exactly once on the way out — typically via
// defer, so failed paths are recorded too.
type Recorder struct {
	store     Store
	log       *zap.Logger
	entry     models.AuditLogEntry
	finalized bool
}

func Begin(store Store, log *zap.Logger, userID *uuid.UUID, ip, userAgent, method, action string) *Recorder {
	return &Recorder{
		store: store,
		log:   log,
		entry: models.AuditLogEntry{
			ID:        uuid.New(),
			UserID:    userID,
			IP:        ip,
			UserAgent: userAgent,
			Method:    method,
			Action:    action,
		},
	}
}

// SetBefore stores the redacted pre-mutation snapshot. Last write wins.
func (r *Recorder) SetBefore(v any) { r.entry.Before = encode(v) }

// SetAfter stores the redacted response snapshot. Last write wins.
func (r *Recorder) SetAfter(v any) { r.entry.After = encode(v) }

// SetBody stores the redacted request payload. Last write wins.
func (r *Recorder) SetBody(v any) { r.entry.Body = encode(v) }

func (r *Recorder) SetDescription(d string) { r.entry.Description = d }

// SetActor attributes the entry to a user resolved after Begin, such as
// a successful login.
func (r *Recorder) SetActor(userID uuid.UUID) { r.entry.UserID = &userID }

// Finalize persists the entry. Safe to call more than once; only the
// first call writes. A store failure is logged, never silently dropped.
func (r *Recorder) Finalize(ctx context.Context) {
	if r == nil || r.finalized {
		return
	}
	r.finalized = true
	r.entry.CreatedAt = time.Now()
	if err := r.store.Insert(ctx, &r.entry); err != nil {
		r.log.Error("audit log write failed",
			zap.Error(err),
			zap.String("action", r.entry.Action),
			zap.String("entry_id", r.entry.ID.String()),
		)
	}
}

// encode marshals without HTML escaping so the redaction marker is
// stored literally, not as <redacted>.
func encode(v any) string {
	if v == nil {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Redact(v)); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
