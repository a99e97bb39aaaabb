package tasks

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"smart-todo-backend/internal/analytics"
	"smart-todo-backend/internal/engine"
)

func newTestMux(store Store) *http.ServeMux {
	rec := analytics.NewRecorder(nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", ListHandler(store))
	mux.HandleFunc("POST /api/tasks", CreateHandler(store, rec))
	mux.HandleFunc("GET /api/tasks/{id}", GetHandler(store))
	mux.HandleFunc("PATCH /api/tasks/{id}", UpdateHandler(store, rec))
	mux.HandleFunc("DELETE /api/tasks/{id}", DeleteHandler(store))
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestCreateTaskEndpoint(t *testing.T) {
	mux := newTestMux(newTestStore())

	w := doJSON(t, mux, http.MethodPost, "/api/tasks", CreateTaskRequest{
		Title:    "Plan the sprint",
		Category: "Work",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var task Task
	if err := json.NewDecoder(w.Body).Decode(&task); err != nil {
		t.Fatal(err)
	}
	if task.ID == "" || task.Status != engine.StatusTodo {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.AIScore == 0 {
		t.Error("aiScore not derived")
	}
}

func TestCreateTaskEndpointValidation(t *testing.T) {
	store := newTestStore()
	mux := newTestMux(store)

	w := doJSON(t, mux, http.MethodPost, "/api/tasks", CreateTaskRequest{Title: "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	list, _ := store.List()
	if len(list) != 0 {
		t.Errorf("store changed by rejected create")
	}
}

func TestCreateTaskEndpointSerializesEmptySuggestions(t *testing.T) {
	mux := newTestMux(newTestStore())

	// Personal task with no deadline gets no suggestions; the field must
	// still come out as an empty array, not be dropped.
	w := doJSON(t, mux, http.MethodPost, "/api/tasks", CreateTaskRequest{Title: "Wash the car"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"aiSuggestions":[]`) {
		t.Errorf("body %q missing empty aiSuggestions array", w.Body.String())
	}
}

func TestCreateTaskEndpointBadJSON(t *testing.T) {
	mux := newTestMux(newTestStore())

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString("{nope"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListTasksEndpoint(t *testing.T) {
	store := newTestStore()
	_, _ = store.Create(CreateTaskRequest{Title: "One thing"})
	_, _ = store.Create(CreateTaskRequest{Title: "Another thing"})
	mux := newTestMux(store)

	w := doJSON(t, mux, http.MethodGet, "/api/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp TasksResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Tasks) != 2 {
		t.Errorf("total/len = %d/%d, want 2/2", resp.Total, len(resp.Tasks))
	}
}

func TestGetTaskEndpointNotFound(t *testing.T) {
	mux := newTestMux(newTestStore())

	w := doJSON(t, mux, http.MethodGet, "/api/tasks/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateTaskEndpoint(t *testing.T) {
	store := newTestStore()
	created, _ := store.Create(CreateTaskRequest{Title: "Rename me"})
	mux := newTestMux(store)

	title := "Renamed"
	w := doJSON(t, mux, http.MethodPatch, "/api/tasks/"+created.ID, UpdateTaskRequest{Title: &title})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var task Task
	if err := json.NewDecoder(w.Body).Decode(&task); err != nil {
		t.Fatal(err)
	}
	if task.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", task.Title)
	}
}

func TestUpdateTaskEndpointNotFound(t *testing.T) {
	mux := newTestMux(newTestStore())

	title := "nope"
	w := doJSON(t, mux, http.MethodPatch, "/api/tasks/404", UpdateTaskRequest{Title: &title})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateTaskEndpointEmitsStatusEvents(t *testing.T) {
	store := newTestStore()
	created, _ := store.Create(CreateTaskRequest{Title: "Ship the release"})
	mux := newTestMux(store)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	completed := engine.StatusCompleted
	w := doJSON(t, mux, http.MethodPatch, "/api/tasks/"+created.ID, UpdateTaskRequest{Status: &completed})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(buf.String(), "[EVENT] task_completed") {
		t.Errorf("log %q missing task_completed event", buf.String())
	}

	buf.Reset()
	todo := engine.StatusTodo
	w = doJSON(t, mux, http.MethodPatch, "/api/tasks/"+created.ID, UpdateTaskRequest{Status: &todo})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(buf.String(), "[EVENT] task_uncompleted") {
		t.Errorf("log %q missing task_uncompleted event", buf.String())
	}

	// A patch that doesn't flip completion emits neither event.
	buf.Reset()
	title := "Ship the release candidate"
	w = doJSON(t, mux, http.MethodPatch, "/api/tasks/"+created.ID, UpdateTaskRequest{Title: &title})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(buf.String(), "[EVENT]") {
		t.Errorf("log %q has an unexpected event", buf.String())
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	store := newTestStore()
	created, _ := store.Create(CreateTaskRequest{Title: "Short-lived"})
	mux := newTestMux(store)

	w := doJSON(t, mux, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	w = doJSON(t, mux, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}
