package services

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

const recentExcuseCount = 5

type statsServiceImpl struct {
	logger zerolog.Logger
	store  storage.Store
}

func NewStatsService(
	logger zerolog.Logger,
	store storage.Store,
) StatsService {
	return &statsServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *statsServiceImpl) TaskStats(ctx context.Context) (*models.Stats, error) {
	tasks, err := s.store.TasksAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}

	excuses, err := s.store.ExcusesAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select excuses")
		return nil, err
	}

	stats := &models.Stats{
		TotalTasks:   len(tasks),
		TotalExcuses: len(excuses),
	}

	// The delay ranking buckets by task name, not id: recurring
	// same-named tasks aggregate into one leaderboard entry. Ties
	// keep the first-occurrence order of the newest-first scan.
	counts := make(map[string]int)
	var order []string
	for _, task := range tasks {
		switch task.Status {
		case models.StatusDelayed:
			stats.TotalDelayed++
		case models.StatusCompleted:
			stats.CompletedTasks++
		}

		if task.DelayCount > 0 {
			if _, ok := counts[task.Name]; !ok {
				order = append(order, task.Name)
			}
			counts[task.Name] += task.DelayCount
		}
	}

	stats.Ranking = make([]models.RankingEntry, 0, len(order))
	for _, name := range order {
		stats.Ranking = append(stats.Ranking, models.RankingEntry{
			Name:  name,
			Count: counts[name],
		})
	}
	sortRankingStable(stats.Ranking)

	if len(stats.Ranking) > 0 {
		stats.LongestStreak = stats.Ranking[0].Count
		stats.MostDelayed = &stats.Ranking[0]
	}

	totalLength := 0
	for _, excuse := range excuses {
		totalLength += excuse.WordCount
	}
	stats.AverageExcuseLength = roundedAverage(totalLength, len(excuses))

	return stats, nil
}

func (s *statsServiceImpl) ExcuseStats(ctx context.Context) (*models.ExcuseStats, error) {
	excuses, err := s.store.ExcusesAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select excuses")
		return nil, err
	}

	stats := &models.ExcuseStats{
		TotalExcuses: len(excuses),
	}

	totalLength := 0
	for _, excuse := range excuses {
		totalLength += excuse.WordCount
		if stats.Longest == nil || excuse.WordCount > stats.Longest.WordCount {
			e := *excuse
			stats.Longest = &e
		}
	}
	stats.AverageLength = roundedAverage(totalLength, len(excuses))

	// Excuses come back newest-first already.
	recent := excuses
	if len(recent) > recentExcuseCount {
		recent = recent[:recentExcuseCount]
	}
	stats.Recent = make([]models.Excuse, 0, len(recent))
	for _, excuse := range recent {
		stats.Recent = append(stats.Recent, *excuse)
	}

	return stats, nil
}

// roundedAverage is 0 for an empty collection, never NaN.
func roundedAverage(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// sortRankingStable orders by summed delay count descending; equal
// counts keep their first-occurrence order.
func sortRankingStable(ranking []models.RankingEntry) {
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
}
