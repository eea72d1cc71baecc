package storage

import (
	"context"
	"errors"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Store is the persistence adapter behind the task and excuse services.
// Each platform shell supplies one implementation; the services never
// talk to a database directly.
//
// Implementations must return tasks and excuses newest-first by
// creation time, which is the canonical read order everywhere.
type Store interface {
	InsertTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	// UpdateTask replaces the stored task with the same ID.
	// It returns ErrNotFound if no such task exists.
	UpdateTask(ctx context.Context, task *models.Task) error
	// DeleteTask removes the task. It never touches the
	// task's excuses, which are kept as historical records.
	DeleteTask(ctx context.Context, id string) error
	TasksAll(ctx context.Context) ([]*models.Task, error)
	TasksByStatus(ctx context.Context, status string) ([]*models.Task, error)

	InsertExcuse(ctx context.Context, excuse *models.Excuse) error
	ExcusesAll(ctx context.Context) ([]*models.Excuse, error)
	ExcusesByTask(ctx context.Context, taskID string) ([]*models.Excuse, error)

	Close() error
}
