// Package notes implements the note store.
//
// Notes live in a private in-memory SQLite database owned by the process:
// nothing is written to disk and everything is lost on exit. Ids come from
// an AUTOINCREMENT key, so they are monotonic and never reused.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var (
	// ErrNotFound is returned when no note has the requested id.
	ErrNotFound = errors.New("note not found")

	// ErrInvalidNote is returned when a note is created without a title or content.
	ErrInvalidNote = errors.New("title and content are required")
)

// Note is a titled text note.
type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Draft is a note that has not been assigned an id yet.
type Draft struct {
	Title   string
	Content string
}

// Seed is the set of notes every new server starts with.
var Seed = []Draft{
	{Title: "First Note", Content: "This is note 1"},
	{Title: "Second Note", Content: "This is note 2"},
}

// Store is the note storage used by the tool, resource, and prompt handlers.
type Store interface {
	// List returns every note in ascending id order.
	List(ctx context.Context) ([]Note, error)
	// Get returns the note with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*Note, error)
	// Create stores a new note and returns its id.
	Create(ctx context.Context, title, content string) (string, error)
}

// SQLiteStore is a Store backed by an in-memory SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// New opens an empty in-memory store, runs the schema migration, and
// inserts the given seed notes in order.
func New(seed []Draft) (*SQLiteStore, error) {
	db, err := openDB("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("notes: open database: %w", err)
	}

	// Every connection to ":memory:" is its own database, so the pool must
	// hold exactly one connection and never retire it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("notes: migration: %w", err)
	}

	ctx := context.Background()
	for _, d := range seed {
		if _, err := s.Create(ctx, d.Title, d.Content); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("notes: seeding %q: %w", d.Title, err)
		}
	}

	return s, nil
}

// Close releases the database; the notes are gone afterwards.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			content TEXT NOT NULL
		)
	`)
	return err
}

// List returns every note in ascending id order.
func (s *SQLiteStore) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, content FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Note
	for rows.Next() {
		var (
			id int64
			n  Note
		)
		if err := rows.Scan(&id, &n.Title, &n.Content); err != nil {
			return nil, fmt.Errorf("notes: scan: %w", err)
		}
		n.ID = formatID(id)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notes: list: %w", err)
	}
	return out, nil
}

// Get returns the note whose id is exactly id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Note, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	n := Note{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT title, content FROM notes WHERE id = ?`, key,
	).Scan(&n.Title, &n.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("notes: get %s: %w", id, err)
	}
	return &n, nil
}

// Create inserts a note and returns its id. Both title and content must be
// non-empty.
func (s *SQLiteStore) Create(ctx context.Context, title, content string) (string, error) {
	if title == "" || content == "" {
		return "", ErrInvalidNote
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (title, content) VALUES (?, ?)`, title, content,
	)
	if err != nil {
		return "", fmt.Errorf("notes: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("notes: insert id: %w", err)
	}
	return formatID(id), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID accepts only the canonical decimal form produced by formatID.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 || formatID(n) != id {
		return 0, false
	}
	return n, true
}
