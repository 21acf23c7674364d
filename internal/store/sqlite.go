package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avoskin/taskdeck/internal/task"
)

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the task database at dbPath.
// A leading ~ is expanded to the user's home directory.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return s, nil
}

// migrate creates the tasks table.
// rowid keeps insertion order for FetchAll.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// FetchAll implements Store.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, completed, created_at FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var completed int
		var createdAt time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Completed = completed != 0
		t.CreatedAt = createdAt
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	return tasks, nil
}

// Insert implements Store.
func (s *SQLiteStore) Insert(ctx context.Context, t task.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, completed, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, boolToInt(t.Completed), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task %d: %w", t.ID, err)
	}
	return nil
}

// Update implements Store. Upsert semantics: when the ID is absent the
// task is inserted instead of silently dropped.
func (s *SQLiteStore) Update(ctx context.Context, t task.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, completed, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed`,
		t.ID, t.Title, t.Description, boolToInt(t.Completed), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return nil
}

// DeleteByID implements Store.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
