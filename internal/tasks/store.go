package tasks

import (
	"errors"
	"sort"
	"strings"
	"time"

	"smart-todo-backend/internal/engine"
)

var ErrNotFound = errors.New("task not found")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Store is the four-operation contract the HTTP surface talks to. The
// default backend is the in-memory store; the SQL store offers the same
// behavior over Postgres or SQLite.
type Store interface {
	List() ([]Task, error)
	Get(id string) (Task, error)
	Create(req CreateTaskRequest) (Task, error)
	Update(id string, patch UpdateTaskRequest) (Task, error)
	Delete(id string) error
}

// newTask builds and enriches a task from a create request. The score runs
// against the default "medium" priority, then the score is mapped back onto
// the priority, overriding whatever the caller had in mind, and suggestions
// are derived from the final record. Derive-then-override is deliberate.
func newTask(req CreateTaskRequest, id string, now time.Time) (Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Task{}, &ValidationError{Field: "title", Reason: "is required"}
	}

	category := req.Category
	if category == "" {
		category = "Personal"
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	t := Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Priority:    engine.PriorityMedium,
		Status:      engine.StatusTodo,
		Deadline:    req.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        tags,
	}

	t.AIScore = engine.Score(t.Facts(), now)
	t.Priority = engine.PriorityFromScore(t.AIScore)
	t.AISuggestions = engine.Suggestions(t.Facts(), now)
	return t, nil
}

// applyPatch merges a partial update onto an existing task. Score and
// suggestions are recomputed only when a scored field changed; the
// score-to-priority remap never runs on update.
func applyPatch(t Task, patch UpdateTaskRequest, now time.Time) Task {
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Deadline != nil {
		t.Deadline = patch.Deadline
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = now

	if patch.touchesDerivedFields() {
		t.AIScore = engine.Score(t.Facts(), now)
		t.AISuggestions = engine.Suggestions(t.Facts(), now)
	}
	return t
}

// sortTasks orders for listing: incomplete before completed, then priority
// rank descending, then deadline ascending with deadline-less tasks last.
// The sort is stable so tasks the comparator can't separate keep their
// insertion order.
func sortTasks(ts []Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]

		aDone := a.Status == engine.StatusCompleted
		bDone := b.Status == engine.StatusCompleted
		if aDone != bDone {
			return !aDone
		}

		ar, br := engine.PriorityRank(a.Priority), engine.PriorityRank(b.Priority)
		if ar != br {
			return ar > br
		}

		switch {
		case a.Deadline != nil && b.Deadline != nil:
			return a.Deadline.Before(*b.Deadline)
		case a.Deadline != nil:
			return true
		case b.Deadline != nil:
			return false
		}
		return false
	})
}
