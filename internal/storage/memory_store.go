package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

// MemoryStore keeps everything in process memory. It backs unit tests
// and the STORAGE_DRIVER=memory mode used for throwaway environments.
type MemoryStore struct {
	mu      sync.RWMutex
	tasks   []*models.Task
	excuses []*models.Excuse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) InsertTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *task
	// Prepend so that equal timestamps still read back newest-first.
	s.tasks = append([]*models.Task{&t}, s.tasks...)
	return nil
}

func (s *MemoryStore) GetTask(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range s.tasks {
		if task.ID == id {
			t := *task
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tasks {
		if existing.ID == task.ID {
			t := *task
			s.tasks[i] = &t
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, task := range s.tasks {
		if task.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) TasksAll(_ context.Context) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedTasks(s.tasks, func(*models.Task) bool { return true }), nil
}

func (s *MemoryStore) TasksByStatus(_ context.Context, status string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedTasks(s.tasks, func(t *models.Task) bool { return t.Status == status }), nil
}

func (s *MemoryStore) InsertExcuse(_ context.Context, excuse *models.Excuse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := *excuse
	s.excuses = append([]*models.Excuse{&e}, s.excuses...)
	return nil
}

func (s *MemoryStore) ExcusesAll(_ context.Context) ([]*models.Excuse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedExcuses(s.excuses, func(*models.Excuse) bool { return true }), nil
}

func (s *MemoryStore) ExcusesByTask(_ context.Context, taskID string) ([]*models.Excuse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedExcuses(s.excuses, func(e *models.Excuse) bool { return e.TaskID == taskID }), nil
}

func sortedTasks(tasks []*models.Task, keep func(*models.Task) bool) []*models.Task {
	result := make([]*models.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			t := *task
			result = append(result, &t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func sortedExcuses(excuses []*models.Excuse, keep func(*models.Excuse) bool) []*models.Excuse {
	result := make([]*models.Excuse, 0, len(excuses))
	for _, excuse := range excuses {
		if keep(excuse) {
			e := *excuse
			result = append(result, &e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
