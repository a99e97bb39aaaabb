package tasks

import (
	"strconv"
	"sync"
	"time"
)

// MemoryStore keeps tasks in process memory, newest first. All state is
// lost on restart. Handlers run concurrently, so every operation holds the
// mutex for its whole duration.
type MemoryStore struct {
	mu     sync.Mutex
	tasks  []Task
	nextID int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		// Clock-seeded so ids stay unique across restarts.
		nextID: time.Now().UnixMilli(),
		now:    time.Now,
	}
}

func (s *MemoryStore) List() ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	sortTasks(out)
	return out, nil
}

func (s *MemoryStore) Get(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrNotFound
}

func (s *MemoryStore) Create(req CreateTaskRequest) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := newTask(req, strconv.FormatInt(s.nextID, 10), s.now())
	if err != nil {
		return Task{}, err
	}
	s.nextID++
	s.tasks = append([]Task{t}, s.tasks...)
	return t, nil
}

func (s *MemoryStore) Update(id string, patch UpdateTaskRequest) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			updated := applyPatch(t, patch, s.now())
			s.tasks[i] = updated
			return updated, nil
		}
	}
	return Task{}, ErrNotFound
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
