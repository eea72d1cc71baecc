package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    status          TEXT NOT NULL,
    created_at      TIMESTAMP NOT NULL,
    updated_at      TIMESTAMP NOT NULL,
    delay_count     INTEGER NOT NULL DEFAULT 0,
    last_delayed_at TIMESTAMP,
    completed_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at);

CREATE TABLE IF NOT EXISTS excuses (
    id         TEXT PRIMARY KEY,
    task_id    TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    word_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_excuses_task_id ON excuses (task_id);
CREATE INDEX IF NOT EXISTS idx_excuses_created_at ON excuses (created_at);
`

// SQLiteStore persists tasks and excuses in a local SQLite database.
// It is the consolidated replacement for the per-platform stores the
// app shells used to carry.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// The store is accessed from HTTP handlers and the sweep ticker;
	// a single connection sidesteps SQLITE_BUSY under modernc.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id, name, status, created_at, updated_at, delay_count, last_delayed_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Name,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
		task.DelayCount,
		nullableTime(task.LastDelayedAt),
		nullableTime(task.CompletedAt),
	)
	return err
}

func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	const selectTaskQuery = `
SELECT id, name, status, created_at, updated_at, delay_count, last_delayed_at, completed_at
FROM tasks
WHERE id = ?
`
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTaskQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET name = ?,
    status = ?,
    updated_at = ?,
    delay_count = ?,
    last_delayed_at = ?,
    completed_at = ?
WHERE id = ?
`
	result, err := s.db.ExecContext(
		ctx,
		updateTaskQuery,
		task.Name,
		task.Status,
		task.UpdatedAt,
		task.DelayCount,
		nullableTime(task.LastDelayedAt),
		nullableTime(task.CompletedAt),
		task.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks WHERE id = ?
`
	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) TasksAll(ctx context.Context) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT id, name, status, created_at, updated_at, delay_count, last_delayed_at, completed_at
FROM tasks
ORDER BY created_at DESC
`
	return s.queryTasks(ctx, selectTasksQuery)
}

func (s *SQLiteStore) TasksByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	const selectTasksByStatusQuery = `
SELECT id, name, status, created_at, updated_at, delay_count, last_delayed_at, completed_at
FROM tasks
WHERE status = ?
ORDER BY created_at DESC
`
	return s.queryTasks(ctx, selectTasksByStatusQuery, status)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) InsertExcuse(ctx context.Context, excuse *models.Excuse) error {
	const insertExcuseQuery = `
INSERT INTO excuses (id, task_id, content, created_at, word_count)
VALUES (?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(
		ctx,
		insertExcuseQuery,
		excuse.ID,
		excuse.TaskID,
		excuse.Content,
		excuse.CreatedAt,
		excuse.WordCount,
	)
	return err
}

func (s *SQLiteStore) ExcusesAll(ctx context.Context) ([]*models.Excuse, error) {
	const selectExcusesQuery = `
SELECT id, task_id, content, created_at, word_count
FROM excuses
ORDER BY created_at DESC
`
	return s.queryExcuses(ctx, selectExcusesQuery)
}

func (s *SQLiteStore) ExcusesByTask(ctx context.Context, taskID string) ([]*models.Excuse, error) {
	const selectExcusesByTaskQuery = `
SELECT id, task_id, content, created_at, word_count
FROM excuses
WHERE task_id = ?
ORDER BY created_at DESC
`
	return s.queryExcuses(ctx, selectExcusesByTaskQuery, taskID)
}

func (s *SQLiteStore) queryExcuses(ctx context.Context, query string, args ...any) ([]*models.Excuse, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var excuses []*models.Excuse
	for rows.Next() {
		excuse := new(models.Excuse)
		err = rows.Scan(
			&excuse.ID,
			&excuse.TaskID,
			&excuse.Content,
			&excuse.CreatedAt,
			&excuse.WordCount,
		)
		if err != nil {
			return nil, err
		}
		excuses = append(excuses, excuse)
	}
	return excuses, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := new(models.Task)
	var lastDelayedAt, completedAt sql.NullTime
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.DelayCount,
		&lastDelayedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastDelayedAt.Valid {
		task.LastDelayedAt = &lastDelayedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}
	return task, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
