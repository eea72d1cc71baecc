package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

type excuseServiceImpl struct {
	logger zerolog.Logger
	store  storage.Store
	tasks  TaskService
}

func NewExcuseService(
	logger zerolog.Logger,
	store storage.Store,
	tasks TaskService,
) ExcuseService {
	return &excuseServiceImpl{
		logger: logger,
		store:  store,
		tasks:  tasks,
	}
}

func (s *excuseServiceImpl) Add(ctx context.Context, taskID, content string) (*models.Excuse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		s.logger.Warn().
			Str("task_id", taskID).
			Msg("refused to add excuse with empty content")
		return nil, ErrEmptyExcuseContent
	}

	// The task must exist before anything is written, so that a
	// missing task leaves no orphaned excuse behind.
	_, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}

	excuseUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate excuse id")
		return nil, err
	}

	excuse := &models.Excuse{
		ID:        excuseUUID.String(),
		TaskID:    taskID,
		Content:   content,
		CreatedAt: time.Now(),
		WordCount: utf8.RuneCountInString(content),
	}

	err = s.store.InsertExcuse(ctx, excuse)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to insert excuse")
		return nil, err
	}

	// Adding an excuse always delays the owning task,
	// exactly once per successful add.
	_, err = s.tasks.PromoteToDelayed(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to promote task after excuse")
		return nil, err
	}

	s.logger.Info().
		Str("excuse_id", excuse.ID).
		Str("task_id", taskID).
		Msg("added excuse")
	return excuse, nil
}

func (s *excuseServiceImpl) ByTask(ctx context.Context, taskID string) ([]*models.Excuse, error) {
	excuses, err := s.store.ExcusesByTask(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select excuses by task")
		return nil, err
	}
	return excuses, nil
}

func (s *excuseServiceImpl) All(ctx context.Context) ([]*models.Excuse, error) {
	excuses, err := s.store.ExcusesAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select excuses")
		return nil, err
	}
	return excuses, nil
}
