package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

func newTestStatsService(t *testing.T) (StatsService, TaskService, ExcuseService) {
	t.Helper()
	store := storage.NewMemoryStore()
	tasks := NewTaskService(zerolog.Nop(), store)
	excuses := NewExcuseService(zerolog.Nop(), store, tasks)
	return NewStatsService(zerolog.Nop(), store), tasks, excuses
}

func TestStatsService_EmptyCollections(t *testing.T) {
	ctx := context.Background()
	stats, _, _ := newTestStatsService(t)

	got, err := stats.TaskStats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalTasks != 0 || got.TotalDelayed != 0 || got.TotalExcuses != 0 {
		t.Errorf("expected all-zero counters, got %+v", got)
	}
	if got.AverageExcuseLength != 0 {
		t.Errorf("average excuse length = %d with no excuses, want exactly 0", got.AverageExcuseLength)
	}
	if got.LongestStreak != 0 {
		t.Errorf("longest streak = %d with no tasks, want 0", got.LongestStreak)
	}
	if got.MostDelayed != nil {
		t.Error("most delayed should be nil with no delays")
	}
}

func TestStatsService_TaskStats(t *testing.T) {
	ctx := context.Background()
	stats, tasks, excuses := newTestStatsService(t)

	gym1, err := tasks.Create(ctx, "gym")
	if err != nil {
		t.Fatal(err)
	}
	gym2, err := tasks.Create(ctx, "gym")
	if err != nil {
		t.Fatal(err)
	}
	report, err := tasks.Create(ctx, "report")
	if err != nil {
		t.Fatal(err)
	}

	// gym accumulates 3 delays across two same-named tasks,
	// report just 1.
	for _, promote := range []struct {
		id    string
		times int
	}{
		{gym1.ID, 2},
		{gym2.ID, 1},
		{report.ID, 1},
	} {
		for i := 0; i < promote.times; i++ {
			if _, err := tasks.PromoteToDelayed(ctx, promote.id); err != nil {
				t.Fatal(err)
			}
		}
	}

	// A completed task still counts toward its name's bucket.
	if _, err := tasks.SetStatus(ctx, gym2.ID, models.StatusCompleted); err != nil {
		t.Fatal(err)
	}

	if _, err := excuses.Add(ctx, report.ID, "meh"); err != nil { // 3 runes, +1 delay for report
		t.Fatal(err)
	}
	if _, err := excuses.Add(ctx, report.ID, "busy!"); err != nil { // 5 runes
		t.Fatal(err)
	}

	got, err := stats.TaskStats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalTasks != 3 {
		t.Errorf("total tasks = %d, want 3", got.TotalTasks)
	}
	if got.CompletedTasks != 1 {
		t.Errorf("completed tasks = %d, want 1", got.CompletedTasks)
	}
	if got.TotalDelayed != 2 {
		t.Errorf("total delayed = %d, want 2", got.TotalDelayed)
	}
	if got.TotalExcuses != 2 {
		t.Errorf("total excuses = %d, want 2", got.TotalExcuses)
	}
	// round((3+5)/2) = 4
	if got.AverageExcuseLength != 4 {
		t.Errorf("average excuse length = %d, want 4", got.AverageExcuseLength)
	}

	// gym: 2+1 = 3, report: 1+2 = 3; the tie keeps first-occurrence
	// order of the newest-first task scan, where report comes first.
	if got.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want 3", got.LongestStreak)
	}
	if len(got.Ranking) != 2 {
		t.Fatalf("ranking has %d entries, want 2", len(got.Ranking))
	}
	if got.Ranking[0].Name != "report" || got.Ranking[0].Count != 3 {
		t.Errorf("ranking[0] = %+v, want report with 3", got.Ranking[0])
	}
	if got.Ranking[1].Name != "gym" || got.Ranking[1].Count != 3 {
		t.Errorf("ranking[1] = %+v, want gym with 3", got.Ranking[1])
	}
	if got.MostDelayed == nil || got.MostDelayed.Name != "report" {
		t.Errorf("most delayed = %+v, want report", got.MostDelayed)
	}
}

func TestStatsService_ExcuseStats(t *testing.T) {
	ctx := context.Background()
	stats, tasks, excuses := newTestStatsService(t)

	t.Run("empty", func(t *testing.T) {
		got, err := stats.ExcuseStats(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got.TotalExcuses != 0 || got.AverageLength != 0 {
			t.Errorf("expected zero stats, got %+v", got)
		}
		if got.Longest != nil {
			t.Error("longest should be nil with no excuses")
		}
	})

	task, err := tasks.Create(ctx, "report")
	if err != nil {
		t.Fatal(err)
	}
	contents := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "ggggggg"}
	for _, content := range contents {
		if _, err := excuses.Add(ctx, task.ID, content); err != nil {
			t.Fatal(err)
		}
	}

	got, err := stats.ExcuseStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalExcuses != len(contents) {
		t.Errorf("total excuses = %d, want %d", got.TotalExcuses, len(contents))
	}
	// round(28/7) = 4
	if got.AverageLength != 4 {
		t.Errorf("average length = %d, want 4", got.AverageLength)
	}
	if got.Longest == nil || got.Longest.WordCount != 7 {
		t.Errorf("longest = %+v, want the 7-rune excuse", got.Longest)
	}
	if len(got.Recent) != recentExcuseCount {
		t.Fatalf("recent has %d entries, want %d", len(got.Recent), recentExcuseCount)
	}
	if got.Recent[0].Content != "ggggggg" {
		t.Errorf("recent[0] = %q, want the newest excuse", got.Recent[0].Content)
	}
}
