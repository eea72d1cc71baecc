package models

import "time"

const (
	StatusTodo      = "todo"
	StatusDelayed   = "delayed"
	StatusCompleted = "completed"
)

type Task struct {
	ID         string
	Name       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DelayCount int
	// LastDelayedAt is stamped every time DelayCount increments.
	LastDelayedAt *time.Time
	// CompletedAt is stamped when the task transitions to completed.
	CompletedAt *time.Time
}
