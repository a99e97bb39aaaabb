package tasks

import (
	"log"
	"time"

	"smart-todo-backend/internal/engine"
)

// SeedDemo loads the sample tasks shown on a fresh install. Scores and
// priorities come out of the engine like any other create.
func SeedDemo(store Store) {
	in := func(d time.Duration) *time.Time {
		t := time.Now().Add(d)
		return &t
	}

	demo := []struct {
		req    CreateTaskRequest
		status engine.Status
	}{
		{
			req: CreateTaskRequest{
				Title:       "Complete project presentation",
				Description: "Prepare slides for the quarterly review meeting",
				Category:    "Work",
				Deadline:    in(2 * 24 * time.Hour),
				Tags:        []string{"presentation", "quarterly", "important"},
			},
			status: engine.StatusInProgress,
		},
		{
			req: CreateTaskRequest{
				Title:       "Buy groceries",
				Description: "Milk, bread, eggs, and vegetables for the week",
				Category:    "Personal",
				Deadline:    in(24 * time.Hour),
				Tags:        []string{"shopping", "weekly", "food"},
			},
			status: engine.StatusTodo,
		},
		{
			req: CreateTaskRequest{
				Title:       "Learn React Router v6",
				Description: "Study the new features and migration guide",
				Category:    "Learning",
				Tags:        []string{"react", "learning", "frontend"},
			},
			status: engine.StatusTodo,
		},
		{
			req: CreateTaskRequest{
				Title:       "Schedule dentist appointment",
				Description: "Regular cleaning and checkup",
				Category:    "Health",
				Deadline:    in(7 * 24 * time.Hour),
				Tags:        []string{"health", "routine", "appointment"},
			},
			status: engine.StatusCompleted,
		},
	}

	for _, d := range demo {
		t, err := store.Create(d.req)
		if err != nil {
			log.Printf("[WARN] seed task %q failed: %v", d.req.Title, err)
			continue
		}
		if d.status != engine.StatusTodo {
			status := d.status
			if _, err := store.Update(t.ID, UpdateTaskRequest{Status: &status}); err != nil {
				log.Printf("[WARN] seed status for %q failed: %v", d.req.Title, err)
			}
		}
	}
}
