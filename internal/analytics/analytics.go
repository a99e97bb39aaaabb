package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart-todo-backend/internal/db"
)

// Envelope is what we store with every event.
type Envelope struct {
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// FromRequest extracts event envelope fields from request.
// Backend-trustable fields only.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// SourceEventKeyFromRequest returns the client-provided idempotency key,
// if any. Duplicate keys make the DB insert a no-op.
func SourceEventKeyFromRequest(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Recorder writes product events. Events always go to the process log;
// when a SQL backend is configured they are also stored in
// analytics_events. Recording never fails the calling operation.
type Recorder struct {
	db  *db.DB
	now func() time.Time
}

func NewRecorder(database *db.DB) *Recorder {
	return &Recorder{db: database, now: time.Now}
}

// Log records one event. Props must already be sanitized; never pass raw
// user text.
func (rec *Recorder) Log(ctx context.Context, env Envelope, eventName string, props map[string]any, sourceEventKey string) {
	if eventName == "" {
		return
	}

	b, err := json.Marshal(props)
	if err != nil {
		return
	}

	eventID := uuid.NewString()
	log.Printf("[EVENT] %s id=%s platform=%s props=%s", eventName, eventID, env.Platform, b)

	if rec.db == nil {
		return
	}

	if sourceEventKey != "" {
		_, _ = rec.db.ExecContext(ctx, rec.db.Rebind(`
			INSERT INTO analytics_events (
				event_id, event_name, event_time,
				session_id, platform, app_version, device_locale,
				source_event_key, properties
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (source_event_key) DO NOTHING
		`), eventID, eventName, rec.now().UTC(),
			nullIfEmpty(env.SessionID), env.Platform, env.AppVersion,
			nullIfEmpty(env.DeviceLocale), sourceEventKey, string(b))
		return
	}

	_, _ = rec.db.ExecContext(ctx, rec.db.Rebind(`
		INSERT INTO analytics_events (
			event_id, event_name, event_time,
			session_id, platform, app_version, device_locale,
			properties
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), eventID, eventName, rec.now().UTC(),
		nullIfEmpty(env.SessionID), env.Platform, env.AppVersion,
		nullIfEmpty(env.DeviceLocale), string(b))
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// TierFromScore buckets an aiScore into a priority tier label.
func TierFromScore(score int) string {
	switch {
	case score >= 80:
		return "P1"
	case score >= 60:
		return "P2"
	default:
		return "P3"
	}
}
