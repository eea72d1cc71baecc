package services

import (
	"context"
	"errors"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrPostNotFound           = errors.New("post not found")
	ErrEmptyTaskName          = errors.New("task name is empty")
	ErrEmptyExcuseContent     = errors.New("excuse content is empty")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
	ErrMissingField           = errors.New("missing required field")
)

type TaskService interface {
	// Create adds a new task in todo status with a zero delay count.
	// The name is trimmed; an empty result returns ErrEmptyTaskName
	// and nothing is written.
	Create(ctx context.Context, name string) (*models.Task, error)

	// SetStatus moves the task to the given status and bumps UpdatedAt.
	// Completing a task stamps CompletedAt.
	SetStatus(ctx context.Context, id, status string) (*models.Task, error)

	// PromoteToDelayed is the single mutation shared by excuse adds and
	// the overdue sweep: it sets the status to delayed, increments
	// DelayCount by exactly one and stamps LastDelayedAt.
	PromoteToDelayed(ctx context.Context, id string) (*models.Task, error)

	// Delete removes the task. Its excuses are kept as
	// historical records.
	Delete(ctx context.Context, id string) error

	// Query returns tasks newest-first, filtered
	// by status when one is given.
	Query(ctx context.Context, status string) ([]*models.Task, error)

	// History returns the distinct task names ever used,
	// sorted alphabetically.
	History(ctx context.Context) ([]string, error)
}

type ExcuseService interface {
	// Add records an excuse for the task and promotes that task to
	// delayed, exactly once per successful call. The content is
	// trimmed; an empty result returns ErrEmptyExcuseContent. A
	// missing task returns ErrTaskNotFound and writes nothing.
	Add(ctx context.Context, taskID, content string) (*models.Excuse, error)

	ByTask(ctx context.Context, taskID string) ([]*models.Excuse, error)
	All(ctx context.Context) ([]*models.Excuse, error)
}

type SweepService interface {
	// Run promotes every todo task created before yesterday's end of
	// day to delayed and returns how many tasks were promoted. It is
	// idempotent: already delayed or completed tasks are never touched.
	Run(ctx context.Context) (int, error)
}

type StatsService interface {
	TaskStats(ctx context.Context) (*models.Stats, error)
	ExcuseStats(ctx context.Context) (*models.ExcuseStats, error)
}

type FeedService interface {
	// EnsureSchema creates the square tables if they don't exist yet.
	EnsureSchema(ctx context.Context) error

	// Share publishes an immutable snapshot of a task and excuse to
	// the public square.
	Share(ctx context.Context, params SharePostParams) (*models.PublicPost, error)

	// ListPosts returns a page of the square feed. SortRecent orders
	// by creation time; SortTrending by the weighted trending score.
	// Viewer flags are computed for the given viewer, false when empty.
	ListPosts(ctx context.Context, params ListPostsParams) ([]*models.PublicPost, error)

	// ToggleInteraction flips a like or favorite for (user, post).
	// Calling it twice returns the post to its original state.
	ToggleInteraction(ctx context.Context, params ToggleInteractionParams) (*ToggleInteractionResult, error)

	Comments(ctx context.Context, postID string, limit int) ([]*models.Comment, error)
	AddComment(ctx context.Context, params AddCommentParams) (*models.Comment, error)

	// Activity lists a user's likes, favorites, comments and shares
	// on the square, newest-first.
	Activity(ctx context.Context, params ActivityParams) ([]*models.ActivityEntry, error)
}

const (
	SortRecent   = "recent"
	SortTrending = "trending"
)

const (
	ActivityAll       = "all"
	ActivityLikes     = "likes"
	ActivityFavorites = "favorites"
	ActivityComments  = "comments"
	ActivityShares    = "shares"
)

type SharePostParams struct {
	TaskID     string
	TaskName   string
	Excuse     string
	DelayCount int
	UserID     string
	UserName   string
	UserAvatar string
}

type ListPostsParams struct {
	Sort     string
	Limit    int
	Offset   int
	ViewerID string
}

type ToggleInteractionParams struct {
	PostID string
	Type   string
	UserID string
}

type ToggleInteractionResult struct {
	Type       string
	Active     bool
	LikesCount *int
}

type AddCommentParams struct {
	PublicTaskID string
	Content      string
	UserID       string
	UserName     string
	UserAvatar   string
}

type ActivityParams struct {
	UserID   string
	Category string
	Limit    int
}
