package tasks

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"smart-todo-backend/internal/engine"
)

var testNow = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

func newTestStore() *MemoryStore {
	s := NewMemoryStore()
	s.nextID = 1
	s.now = func() time.Time { return testNow }
	return s
}

func TestCreateValidation(t *testing.T) {
	s := newTestStore()

	_, err := s.Create(CreateTaskRequest{Title: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	list, _ := s.List()
	if len(list) != 0 {
		t.Errorf("store changed by failed create: %v", list)
	}
}

func TestCreateDeriveThenOverride(t *testing.T) {
	s := newTestStore()

	deadline := testNow.Add(12 * time.Hour)
	task, err := s.Create(CreateTaskRequest{
		Title:    "Ship the release",
		Category: "Work",
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 50 base + 20 (medium at scoring time) + 20 (due in a day) + 15 (Work),
	// clamped to 100.
	if task.AIScore != 100 {
		t.Errorf("aiScore = %d, want 100", task.AIScore)
	}
	// The >=80 branch wins, so even a maxed score maps to high, not urgent.
	if task.Priority != engine.PriorityHigh {
		t.Errorf("priority = %q, want high", task.Priority)
	}
	if task.Status != engine.StatusTodo {
		t.Errorf("status = %q, want todo", task.Status)
	}

	wantSuggestions := []string{
		"Consider focusing on this task first",
		"Break down into smaller, manageable steps",
		"This task is due soon - prioritize today",
	}
	if !reflect.DeepEqual(task.AISuggestions, wantSuggestions) {
		t.Errorf("suggestions = %v, want %v", task.AISuggestions, wantSuggestions)
	}
}

func TestCreateDefaults(t *testing.T) {
	s := newTestStore()

	task, err := s.Create(CreateTaskRequest{Title: "  Water the plants  "})
	if err != nil {
		t.Fatal(err)
	}

	if task.Title != "Water the plants" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Category != "Personal" {
		t.Errorf("category = %q, want Personal", task.Category)
	}
	// 50 + 20 + 5 = 75 -> medium.
	if task.AIScore != 75 || task.Priority != engine.PriorityMedium {
		t.Errorf("aiScore/priority = %d/%q, want 75/medium", task.AIScore, task.Priority)
	}
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Errorf("tags = %v, want empty non-nil", task.Tags)
	}
	if task.ID == "" {
		t.Error("id not assigned")
	}
}

func TestGetIdempotent(t *testing.T) {
	s := newTestStore()
	created, _ := s.Create(CreateTaskRequest{Title: "Read a chapter"})

	first, err := s.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Get(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Get differs: %+v vs %+v", first, second)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestStore()
	created, _ := s.Create(CreateTaskRequest{Title: "Keep me"})

	title := "changed"
	_, err := s.Update("does-not-exist", UpdateTaskRequest{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	got, _ := s.Get(created.ID)
	if got.Title != "Keep me" {
		t.Errorf("existing record altered by failed update: %+v", got)
	}
}

func TestUpdateStatusOnlySkipsDerivation(t *testing.T) {
	s := newTestStore()
	created, _ := s.Create(CreateTaskRequest{Title: "Stretch for ten minutes", Category: "Health"})

	later := testNow.Add(time.Hour)
	s.now = func() time.Time { return later }

	status := engine.StatusCompleted
	updated, err := s.Update(created.ID, UpdateTaskRequest{Status: &status})
	if err != nil {
		t.Fatal(err)
	}

	if updated.Status != engine.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}
	if updated.AIScore != created.AIScore {
		t.Errorf("aiScore recomputed on status-only change: %d -> %d", created.AIScore, updated.AIScore)
	}
	if !reflect.DeepEqual(updated.AISuggestions, created.AISuggestions) {
		t.Errorf("suggestions recomputed on status-only change")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt not refreshed: %v", updated.UpdatedAt)
	}
}

func TestUpdateRecomputesScoreWithoutRemap(t *testing.T) {
	s := newTestStore()
	created, _ := s.Create(CreateTaskRequest{Title: "Sort the inbox"})

	// 50 + 20 + 5 = 75, medium.
	if created.AIScore != 75 || created.Priority != engine.PriorityMedium {
		t.Fatalf("setup: aiScore/priority = %d/%q", created.AIScore, created.Priority)
	}

	category := "Work"
	updated, err := s.Update(created.ID, UpdateTaskRequest{Category: &category})
	if err != nil {
		t.Fatal(err)
	}

	// 50 + 20 + 15 = 85, but priority stays whatever it was: the
	// score-to-priority remap is a create-only step.
	if updated.AIScore != 85 {
		t.Errorf("aiScore = %d, want 85", updated.AIScore)
	}
	if updated.Priority != engine.PriorityMedium {
		t.Errorf("priority = %q, want medium (no remap on update)", updated.Priority)
	}
}

func TestDeleteTwice(t *testing.T) {
	s := newTestStore()
	created, _ := s.Create(CreateTaskRequest{Title: "Throw me away"})

	if err := s.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestListOrdering(t *testing.T) {
	d1 := testNow.Add(24 * time.Hour)
	d2 := testNow.Add(48 * time.Hour)

	s := newTestStore()
	s.tasks = []Task{
		{ID: "done-urgent", Status: engine.StatusCompleted, Priority: engine.PriorityUrgent},
		{ID: "todo-low", Status: engine.StatusTodo, Priority: engine.PriorityLow},
		{ID: "todo-high-late", Status: engine.StatusTodo, Priority: engine.PriorityHigh, Deadline: &d2},
		{ID: "todo-high-soon", Status: engine.StatusTodo, Priority: engine.PriorityHigh, Deadline: &d1},
		{ID: "todo-high-nodeadline", Status: engine.StatusTodo, Priority: engine.PriorityHigh},
	}

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, task := range list {
		ids = append(ids, task.ID)
	}
	want := []string{"todo-high-soon", "todo-high-late", "todo-high-nodeadline", "todo-low", "done-urgent"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestListKeepsRelativeOrderForDeadlineless(t *testing.T) {
	s := newTestStore()
	s.tasks = []Task{
		{ID: "a", Status: engine.StatusTodo, Priority: engine.PriorityMedium},
		{ID: "b", Status: engine.StatusTodo, Priority: engine.PriorityMedium},
	}

	list, _ := s.List()
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("deadline-less tasks reordered: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestListDoesNotMutateStore(t *testing.T) {
	s := newTestStore()
	s.tasks = []Task{
		{ID: "done", Status: engine.StatusCompleted, Priority: engine.PriorityLow},
		{ID: "open", Status: engine.StatusTodo, Priority: engine.PriorityLow},
	}

	if _, err := s.List(); err != nil {
		t.Fatal(err)
	}
	if s.tasks[0].ID != "done" {
		t.Error("List reordered the underlying slice")
	}
}
