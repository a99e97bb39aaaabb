package tasks

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"smart-todo-backend/internal/db"
)

// SQLStore keeps tasks in Postgres or SQLite behind the same contract as
// the memory store. Sorting and enrichment happen in Go so every backend
// behaves identically, including the deadline tie rules.
type SQLStore struct {
	db  *db.DB
	now func() time.Time
}

func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database, now: time.Now}
}

const taskColumns = `id, title, description, category, priority, status, deadline,
	ai_score, ai_suggestions, tags, created_at, updated_at`

// parseKey maps a path id onto the numeric database key. Anything
// non-numeric can't exist, so it is a not-found, not a driver error.
func parseKey(id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return key, nil
}

func (s *SQLStore) List() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortTasks(out)
	return out, nil
}

func (s *SQLStore) Get(id string) (Task, error) {
	key, err := parseKey(id)
	if err != nil {
		return Task{}, err
	}
	row := s.db.QueryRow(
		s.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), key,
	)
	t, scanErr := scanTask(row)
	if scanErr == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	return t, scanErr
}

func (s *SQLStore) Create(req CreateTaskRequest) (Task, error) {
	// Build with a placeholder id; the database assigns the real one.
	t, err := newTask(req, "", s.now())
	if err != nil {
		return Task{}, err
	}

	suggestions, tags := mustJSON(t.AISuggestions), mustJSON(t.Tags)

	if s.db.Driver == db.DriverPostgres {
		var id int64
		err = s.db.QueryRow(s.db.Rebind(`
			INSERT INTO tasks (title, description, category, priority, status, deadline,
				ai_score, ai_suggestions, tags, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`), t.Title, t.Description, t.Category, t.Priority, t.Status, t.Deadline,
			t.AIScore, suggestions, tags, t.CreatedAt, t.UpdatedAt).Scan(&id)
		if err != nil {
			return Task{}, err
		}
		t.ID = strconv.FormatInt(id, 10)
		return t, nil
	}

	res, err := s.db.Exec(`
		INSERT INTO tasks (title, description, category, priority, status, deadline,
			ai_score, ai_suggestions, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Title, t.Description, t.Category, t.Priority, t.Status, t.Deadline,
		t.AIScore, suggestions, tags, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Task{}, err
	}
	t.ID = strconv.FormatInt(id, 10)
	return t, nil
}

func (s *SQLStore) Update(id string, patch UpdateTaskRequest) (Task, error) {
	key, err := parseKey(id)
	if err != nil {
		return Task{}, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return Task{}, err
	}

	updated := applyPatch(existing, patch, s.now())

	_, err = s.db.Exec(s.db.Rebind(`
		UPDATE tasks
		SET title = ?, description = ?, category = ?, priority = ?, status = ?,
			deadline = ?, ai_score = ?, ai_suggestions = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`), updated.Title, updated.Description, updated.Category, updated.Priority,
		updated.Status, updated.Deadline, updated.AIScore,
		mustJSON(updated.AISuggestions), mustJSON(updated.Tags),
		updated.UpdatedAt, key)
	if err != nil {
		return Task{}, err
	}
	return updated, nil
}

func (s *SQLStore) Delete(id string) error {
	key, err := parseKey(id)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM tasks WHERE id = ?`), key)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var (
		t           Task
		id          int64
		deadline    sql.NullTime
		suggestions string
		tags        string
	)

	err := row.Scan(&id, &t.Title, &t.Description, &t.Category, &t.Priority,
		&t.Status, &deadline, &t.AIScore, &suggestions, &tags,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Task{}, err
	}

	t.ID = strconv.FormatInt(id, 10)
	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	if err := json.Unmarshal([]byte(suggestions), &t.AISuggestions); err != nil {
		return Task{}, err
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return Task{}, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t, nil
}

func mustJSON(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}
