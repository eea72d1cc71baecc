package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	store  storage.Store
}

func NewTaskService(
	logger zerolog.Logger,
	store storage.Store,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.logger.Warn().Msg("refused to create task with empty name")
		return nil, ErrEmptyTaskName
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:         taskUUID.String(),
		Name:       name,
		Status:     models.StatusTodo,
		CreatedAt:  now,
		UpdatedAt:  now,
		DelayCount: 0,
	}

	err = s.store.InsertTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) SetStatus(ctx context.Context, id, status string) (*models.Task, error) {
	if status != models.StatusTodo &&
		status != models.StatusDelayed &&
		status != models.StatusCompleted {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Status = status
	task.UpdatedAt = now
	if status == models.StatusCompleted {
		task.CompletedAt = &now
	}

	err = s.updateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) PromoteToDelayed(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task.Status = models.StatusDelayed
	task.DelayCount++
	task.LastDelayedAt = &now
	task.UpdatedAt = now

	err = s.updateTask(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Int("delay_count", task.DelayCount).
		Msg("promoted task to delayed")
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Query(ctx context.Context, status string) ([]*models.Task, error) {
	if status == "" {
		tasks, err := s.store.TasksAll(ctx)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to select tasks")
			return nil, err
		}
		return tasks, nil
	}

	if status != models.StatusTodo &&
		status != models.StatusDelayed &&
		status != models.StatusCompleted {
		return nil, ErrInvalidTaskStatus
	}

	tasks, err := s.store.TasksByStatus(ctx, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("status", status).
			Msg("failed to select tasks by status")
		return nil, err
	}
	return tasks, nil
}

func (s *taskServiceImpl) History(ctx context.Context) ([]string, error) {
	tasks, err := s.store.TasksAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}

	seen := make(map[string]struct{}, len(tasks))
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := seen[task.Name]; ok {
			continue
		}
		seen[task.Name] = struct{}{}
		names = append(names, task.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *taskServiceImpl) getTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task")
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) updateTask(ctx context.Context, task *models.Task) error {
	err := s.store.UpdateTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	return nil
}
