package contexts

import (
	"errors"
	"sort"
	"strings"
	"time"

	"smart-todo-backend/internal/engine"
)

var ErrNotFound = errors.New("context entry not found")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// DefaultRecentLimit is how many entries Recent returns when the caller
// doesn't say.
const DefaultRecentLimit = 10

type Store interface {
	List() ([]Entry, error)
	Get(id string) (Entry, error)
	Create(req CreateEntryRequest) (Entry, error)
	Delete(id string) error
	Recent(limit int) ([]Entry, error)
}

// newEntry validates and enriches an entry before insertion. The engine's
// insight and extraction passes run exactly once, at creation time.
func newEntry(req CreateEntryRequest, id string, now time.Time) (Entry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return Entry{}, &ValidationError{Field: "content", Reason: "is required"}
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}
	entryType := req.Type
	if entryType == "" {
		entryType = "message"
	}

	return Entry{
		ID:                id,
		Content:           content,
		Source:            source,
		Type:              entryType,
		CreatedAt:         now,
		ProcessedInsights: engine.ContextInsights(content),
		ExtractedTasks:    engine.ExtractTasks(content),
	}, nil
}

// sortEntries orders newest first; stable so clock ties keep insertion order.
func sortEntries(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		return es[i].CreatedAt.After(es[j].CreatedAt)
	})
}
