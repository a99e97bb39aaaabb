package tasks

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smart-todo-backend/internal/analytics"
	"smart-todo-backend/internal/engine"
)

func writeStoreError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	default:
		http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
	}
}

func ListHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := store.List()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if tasks == nil {
			tasks = []Task{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TasksResponse{Tasks: tasks, Total: len(tasks)})
	}
}

func GetHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.Get(r.PathValue("id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(t)
	}
}

func CreateHandler(store Store, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := store.Create(body)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		rec.Log(r.Context(), analytics.FromRequest(r), "task_created", map[string]any{
			"task_id":       t.ID,
			"text_len":      len(t.Title) + len(t.Description),
			"has_deadline":  t.Deadline != nil,
			"category":      t.Category,
			"priority_tier": analytics.TierFromScore(t.AIScore),
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(t)
	}
}

func UpdateHandler(store Store, rec *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var patch UpdateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var prevStatus engine.Status
		if prev, err := store.Get(id); err == nil {
			prevStatus = prev.Status
		}

		t, err := store.Update(id, patch)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		if prevStatus != "" && prevStatus != t.Status {
			env := analytics.FromRequest(r)
			key := analytics.SourceEventKeyFromRequest(r)
			props := map[string]any{
				"task_id":       t.ID,
				"priority_tier": analytics.TierFromScore(t.AIScore),
			}
			if prevStatus != engine.StatusCompleted && t.Status == engine.StatusCompleted {
				rec.Log(r.Context(), env, "task_completed", props, key)
			}
			if prevStatus == engine.StatusCompleted && t.Status != engine.StatusCompleted {
				rec.Log(r.Context(), env, "task_uncompleted", props, key)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(t)
	}
}

func DeleteHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.Delete(id); err != nil {
			writeStoreError(w, err)
			return
		}

		log.Printf("task %s deleted", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
