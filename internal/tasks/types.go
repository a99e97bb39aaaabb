package tasks

import (
	"time"

	"smart-todo-backend/internal/engine"
)

type Task struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Priority      engine.Priority `json:"priority"`
	Status        engine.Status   `json:"status"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	AIScore       int             `json:"aiScore"`
	AISuggestions []string        `json:"aiSuggestions"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Tags          []string        `json:"tags"`
}

// Facts is the engine's view of the task.
func (t Task) Facts() engine.TaskFacts {
	return engine.TaskFacts{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      t.Status,
		Deadline:    t.Deadline,
		Tags:        t.Tags,
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline"`
	Tags        []string   `json:"tags"`
}

// UpdateTaskRequest is a partial patch; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Deadline    *time.Time       `json:"deadline"`
	Tags        *[]string        `json:"tags"`
	Priority    *engine.Priority `json:"priority"`
	Status      *engine.Status   `json:"status"`
}

// touchesDerivedFields reports whether the patch changes anything the
// score and suggestions are computed from. Status-only patches don't.
func (p UpdateTaskRequest) touchesDerivedFields() bool {
	return p.Title != nil || p.Description != nil || p.Category != nil ||
		p.Deadline != nil || p.Priority != nil
}

type TasksResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}
