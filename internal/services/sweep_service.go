package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

type sweepServiceImpl struct {
	logger zerolog.Logger
	store  storage.Store
	tasks  TaskService

	// now is swappable so that boundary behavior can be tested.
	now func() time.Time
}

func NewSweepService(
	logger zerolog.Logger,
	store storage.Store,
	tasks TaskService,
) SweepService {
	return &sweepServiceImpl{
		logger: logger,
		store:  store,
		tasks:  tasks,
		now:    time.Now,
	}
}

func (s *sweepServiceImpl) Run(ctx context.Context) (int, error) {
	cutoff := overdueCutoff(s.now())

	todos, err := s.store.TasksByStatus(ctx, models.StatusTodo)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select todo tasks")
		return 0, err
	}

	promoted := 0
	for _, task := range todos {
		if !task.CreatedAt.Before(cutoff) {
			continue
		}

		_, err = s.tasks.PromoteToDelayed(ctx, task.ID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", task.ID).
				Msg("failed to promote overdue task")
			return promoted, err
		}
		promoted++
	}

	if promoted > 0 {
		s.logger.Info().
			Int("promoted", promoted).
			Msg("promoted overdue tasks")
	}
	return promoted, nil
}

// overdueCutoff returns yesterday's 23:59:59.999 in local time. A todo
// task created strictly before this moment missed its day and is overdue.
func overdueCutoff(now time.Time) time.Time {
	yesterday := now.AddDate(0, 0, -1)
	return time.Date(
		yesterday.Year(), yesterday.Month(), yesterday.Day(),
		23, 59, 59, int(999*time.Millisecond),
		yesterday.Location(),
	)
}
