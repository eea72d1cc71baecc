package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

func newTestTaskService(t *testing.T) (TaskService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewTaskService(zerolog.Nop(), store), store
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates task in todo status", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)

		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}
		if task.ID == "" {
			t.Error("expected a generated id")
		}
		if task.Status != models.StatusTodo {
			t.Errorf("status = %q, want %q", task.Status, models.StatusTodo)
		}
		if task.DelayCount != 0 {
			t.Errorf("delay count = %d, want 0", task.DelayCount)
		}
		if !task.CreatedAt.Equal(task.UpdatedAt) {
			t.Error("created and updated timestamps should match at creation")
		}
	})

	t.Run("trims the name", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)

		task, err := tasks.Create(ctx, "  write report  ")
		if err != nil {
			t.Fatal(err)
		}
		if task.Name != "write report" {
			t.Errorf("name = %q, want %q", task.Name, "write report")
		}
	})

	t.Run("rejects blank names without writing", func(t *testing.T) {
		tasks, store := newTestTaskService(t)

		_, err := tasks.Create(ctx, "   ")
		if !errors.Is(err, ErrEmptyTaskName) {
			t.Fatalf("err = %v, want ErrEmptyTaskName", err)
		}

		all, err := store.TasksAll(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 0 {
			t.Errorf("store has %d tasks, want 0", len(all))
		}
	})
}

func TestTaskService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completing stamps completed at", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}

		updated, err := tasks.SetStatus(ctx, task.ID, models.StatusCompleted)
		if err != nil {
			t.Fatal(err)
		}
		if updated.Status != models.StatusCompleted {
			t.Errorf("status = %q, want %q", updated.Status, models.StatusCompleted)
		}
		if updated.CompletedAt == nil {
			t.Error("expected completed at to be stamped")
		}
		if !updated.UpdatedAt.After(task.UpdatedAt) && !updated.UpdatedAt.Equal(task.UpdatedAt) {
			t.Error("expected updated at to be bumped")
		}
	})

	t.Run("completion keeps delay count", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tasks.PromoteToDelayed(ctx, task.ID); err != nil {
			t.Fatal(err)
		}

		updated, err := tasks.SetStatus(ctx, task.ID, models.StatusCompleted)
		if err != nil {
			t.Fatal(err)
		}
		if updated.DelayCount != 1 {
			t.Errorf("delay count = %d, want 1 after completion", updated.DelayCount)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)
		task, err := tasks.Create(ctx, "write report")
		if err != nil {
			t.Fatal(err)
		}

		_, err = tasks.SetStatus(ctx, task.ID, "archived")
		if !errors.Is(err, ErrInvalidTaskStatus) {
			t.Fatalf("err = %v, want ErrInvalidTaskStatus", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		tasks, _ := newTestTaskService(t)

		_, err := tasks.SetStatus(ctx, "missing", models.StatusDelayed)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("err = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskService_PromoteToDelayed(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTestTaskService(t)

	task, err := tasks.Create(ctx, "write report")
	if err != nil {
		t.Fatal(err)
	}

	// Each promotion increments the delay count by exactly one.
	for i := 1; i <= 3; i++ {
		promoted, err := tasks.PromoteToDelayed(ctx, task.ID)
		if err != nil {
			t.Fatal(err)
		}
		if promoted.Status != models.StatusDelayed {
			t.Errorf("status = %q, want %q", promoted.Status, models.StatusDelayed)
		}
		if promoted.DelayCount != i {
			t.Errorf("delay count = %d, want %d", promoted.DelayCount, i)
		}
		if promoted.LastDelayedAt == nil {
			t.Error("expected last delayed at to be stamped")
		}
	}
}

func TestTaskService_Query(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTestTaskService(t)

	first, err := tasks.Create(ctx, "first")
	if err != nil {
		t.Fatal(err)
	}
	second, err := tasks.Create(ctx, "second")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tasks.PromoteToDelayed(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	t.Run("all tasks newest-first", func(t *testing.T) {
		all, err := tasks.Query(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 {
			t.Fatalf("got %d tasks, want 2", len(all))
		}
		if all[0].ID != second.ID {
			t.Errorf("first result = %q, want the newest task %q", all[0].ID, second.ID)
		}
	})

	t.Run("filtered by status", func(t *testing.T) {
		delayed, err := tasks.Query(ctx, models.StatusDelayed)
		if err != nil {
			t.Fatal(err)
		}
		if len(delayed) != 1 || delayed[0].ID != first.ID {
			t.Errorf("delayed filter returned %d tasks, want just %q", len(delayed), first.ID)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := tasks.Query(ctx, "archived")
		if !errors.Is(err, ErrInvalidTaskStatus) {
			t.Fatalf("err = %v, want ErrInvalidTaskStatus", err)
		}
	})
}

func TestTaskService_History(t *testing.T) {
	ctx := context.Background()
	tasks, _ := newTestTaskService(t)

	for _, name := range []string{"gym", "write report", "gym", "laundry"} {
		if _, err := tasks.Create(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	names, err := tasks.History(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"gym", "laundry", "write report"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	tasks, store := newTestTaskService(t)

	task, err := tasks.Create(ctx, "write report")
	if err != nil {
		t.Fatal(err)
	}

	if err := tasks.Delete(ctx, task.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := store.GetTask(ctx, task.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want storage.ErrNotFound", err)
	}

	if err := tasks.Delete(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second delete err = %v, want ErrTaskNotFound", err)
	}
}
