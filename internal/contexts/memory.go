package contexts

import (
	"strconv"
	"sync"
	"time"
)

// MemoryStore keeps entries in process memory, newest first.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: time.Now().UnixMilli(),
		now:    time.Now,
	}
}

func (s *MemoryStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(), nil
}

func (s *MemoryStore) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.sortedLocked()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortedLocked returns a copy ordered by createdAt descending. Entries are
// inserted at the head, but explicit ordering keeps clock ties and seeded
// backdated entries honest.
func (s *MemoryStore) sortedLocked() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	sortEntries(out)
	return out
}

func (s *MemoryStore) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *MemoryStore) Create(req CreateEntryRequest) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := newEntry(req, strconv.FormatInt(s.nextID, 10), s.now())
	if err != nil {
		return Entry{}, err
	}
	s.nextID++
	s.entries = append([]Entry{e}, s.entries...)
	return e, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
