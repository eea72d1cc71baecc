package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

func newTestExcuseService(t *testing.T) (ExcuseService, TaskService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	tasks := NewTaskService(zerolog.Nop(), store)
	return NewExcuseService(zerolog.Nop(), store, tasks), tasks, store
}

func TestExcuseService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("delays the owning task exactly once", func(t *testing.T) {
		excuses, tasks, store := newTestExcuseService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}

		excuse, err := excuses.Add(ctx, task.ID, "too tired")
		if err != nil {
			t.Fatal(err)
		}
		if excuse.TaskID != task.ID {
			t.Errorf("task id = %q, want %q", excuse.TaskID, task.ID)
		}

		owner, err := store.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatal(err)
		}
		if owner.Status != models.StatusDelayed {
			t.Errorf("owner status = %q, want %q", owner.Status, models.StatusDelayed)
		}
		if owner.DelayCount != 1 {
			t.Errorf("owner delay count = %d, want 1", owner.DelayCount)
		}
		if owner.LastDelayedAt == nil {
			t.Error("expected last delayed at to be stamped")
		}
	})

	t.Run("delays a completed task too", func(t *testing.T) {
		excuses, tasks, store := newTestExcuseService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tasks.SetStatus(ctx, task.ID, models.StatusCompleted); err != nil {
			t.Fatal(err)
		}

		if _, err := excuses.Add(ctx, task.ID, "it came back"); err != nil {
			t.Fatal(err)
		}

		owner, err := store.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatal(err)
		}
		if owner.Status != models.StatusDelayed {
			t.Errorf("owner status = %q, want %q", owner.Status, models.StatusDelayed)
		}
	})

	t.Run("word count is the trimmed rune count", func(t *testing.T) {
		excuses, tasks, _ := newTestExcuseService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}

		excuse, err := excuses.Add(ctx, task.ID, "  too tired  ")
		if err != nil {
			t.Fatal(err)
		}
		if excuse.Content != "too tired" {
			t.Errorf("content = %q, want trimmed %q", excuse.Content, "too tired")
		}
		if excuse.WordCount != 9 {
			t.Errorf("word count = %d, want 9", excuse.WordCount)
		}

		// Multi-byte characters count as one each.
		excuse, err = excuses.Add(ctx, task.ID, "太累了")
		if err != nil {
			t.Fatal(err)
		}
		if excuse.WordCount != 3 {
			t.Errorf("word count = %d, want 3", excuse.WordCount)
		}
	})

	t.Run("rejects blank content without writing", func(t *testing.T) {
		excuses, tasks, store := newTestExcuseService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}

		_, err = excuses.Add(ctx, task.ID, "   ")
		if !errors.Is(err, ErrEmptyExcuseContent) {
			t.Fatalf("err = %v, want ErrEmptyExcuseContent", err)
		}

		owner, err := store.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatal(err)
		}
		if owner.DelayCount != 0 {
			t.Errorf("delay count = %d, want 0 after rejected excuse", owner.DelayCount)
		}
	})

	t.Run("missing task writes nothing", func(t *testing.T) {
		excuses, _, store := newTestExcuseService(t)

		_, err := excuses.Add(ctx, "missing", "too tired")
		if !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("err = %v, want ErrTaskNotFound", err)
		}

		all, err := store.ExcusesAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 0 {
			t.Errorf("store has %d excuses, want 0", len(all))
		}
	})
}

func TestExcuseService_OrphansSurviveTaskDeletion(t *testing.T) {
	ctx := context.Background()
	excuses, tasks, _ := newTestExcuseService(t)

	task, err := tasks.Create(ctx, "write report")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := excuses.Add(ctx, task.ID, "too tired"); err != nil {
		t.Fatal(err)
	}

	if err := tasks.Delete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	// Excuses are historical records and outlive their task.
	orphans, err := excuses.ByTask(ctx, task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orphans) != 1 {
		t.Fatalf("got %d excuses after task deletion, want 1", len(orphans))
	}
}

func TestExcuseService_Reads(t *testing.T) {
	ctx := context.Background()
	excuses, tasks, _ := newTestExcuseService(t)

	taskA, err := tasks.Create(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	taskB, err := tasks.Create(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}

	for _, add := range []struct{ taskID, content string }{
		{taskA.ID, "first"},
		{taskB.ID, "second"},
		{taskA.ID, "third"},
	} {
		if _, err := excuses.Add(ctx, add.taskID, add.content); err != nil {
			t.Fatal(err)
		}
	}

	byTask, err := excuses.ByTask(ctx, taskA.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(byTask) != 2 {
		t.Fatalf("got %d excuses for task a, want 2", len(byTask))
	}
	if byTask[0].Content != "third" {
		t.Errorf("newest excuse = %q, want %q", byTask[0].Content, "third")
	}

	all, err := excuses.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d excuses, want 3", len(all))
	}
	if all[0].Content != "third" {
		t.Errorf("newest excuse = %q, want %q", all[0].Content, "third")
	}
}
