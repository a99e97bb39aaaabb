package contexts

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"smart-todo-backend/internal/db"
)

// SQLStore keeps context entries in Postgres or SQLite.
type SQLStore struct {
	db  *db.DB
	now func() time.Time
}

func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database, now: time.Now}
}

const entryColumns = `id, content, source, entry_type, created_at, processed_insights, extracted_tasks`

// parseKey maps a path id onto the numeric database key. Anything
// non-numeric can't exist, so it is a not-found, not a driver error.
func parseKey(id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return key, nil
}

func (s *SQLStore) List() ([]Entry, error) {
	return s.query(`SELECT ` + entryColumns + ` FROM context_entries ORDER BY created_at DESC, id DESC`)
}

func (s *SQLStore) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.query(s.db.Rebind(
		`SELECT `+entryColumns+` FROM context_entries ORDER BY created_at DESC, id DESC LIMIT ?`,
	), limit)
}

func (s *SQLStore) query(q string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) Get(id string) (Entry, error) {
	key, err := parseKey(id)
	if err != nil {
		return Entry{}, err
	}
	row := s.db.QueryRow(
		s.db.Rebind(`SELECT `+entryColumns+` FROM context_entries WHERE id = ?`), key,
	)
	e, scanErr := scanEntry(row)
	if scanErr == sql.ErrNoRows {
		return Entry{}, ErrNotFound
	}
	return e, scanErr
}

func (s *SQLStore) Create(req CreateEntryRequest) (Entry, error) {
	e, err := newEntry(req, "", s.now())
	if err != nil {
		return Entry{}, err
	}

	insights, extracted := marshalStrings(e.ProcessedInsights), marshalStrings(e.ExtractedTasks)

	if s.db.Driver == db.DriverPostgres {
		var id int64
		err = s.db.QueryRow(s.db.Rebind(`
			INSERT INTO context_entries (content, source, entry_type, created_at,
				processed_insights, extracted_tasks)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`), e.Content, e.Source, e.Type, e.CreatedAt, insights, extracted).Scan(&id)
		if err != nil {
			return Entry{}, err
		}
		e.ID = strconv.FormatInt(id, 10)
		return e, nil
	}

	res, err := s.db.Exec(`
		INSERT INTO context_entries (content, source, entry_type, created_at,
			processed_insights, extracted_tasks)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Content, e.Source, e.Type, e.CreatedAt, insights, extracted)
	if err != nil {
		return Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}
	e.ID = strconv.FormatInt(id, 10)
	return e, nil
}

func (s *SQLStore) Delete(id string) error {
	key, err := parseKey(id)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM context_entries WHERE id = ?`), key)
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

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e         Entry
		id        int64
		insights  string
		extracted string
	)

	err := row.Scan(&id, &e.Content, &e.Source, &e.Type, &e.CreatedAt, &insights, &extracted)
	if err != nil {
		return Entry{}, err
	}

	e.ID = strconv.FormatInt(id, 10)
	if err := json.Unmarshal([]byte(insights), &e.ProcessedInsights); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(extracted), &e.ExtractedTasks); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func marshalStrings(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}
