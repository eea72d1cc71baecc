package app

import (
	"context"

	"github.com/ilovedelay/i-love-delay/internal/services"
)

var (
	globalTaskService   services.TaskService
	globalExcuseService services.ExcuseService
	globalSweepService  services.SweepService
	globalStatsService  services.StatsService
	globalFeedService   services.FeedService
)

func MustInitServices() {
	globalTaskService = services.NewTaskService(globalLogger, globalStore)
	globalExcuseService = services.NewExcuseService(globalLogger, globalStore, globalTaskService)
	globalSweepService = services.NewSweepService(globalLogger, globalStore, globalTaskService)
	globalStatsService = services.NewStatsService(globalLogger, globalStore)
	globalFeedService = services.NewFeedService(globalLogger, globalPostgresPool)

	globalLogger.Info().Msg("initialized services")
}

func MustEnsureFeedSchema() {
	err := globalFeedService.EnsureSchema(context.Background())
	if err != nil {
		panic(err)
	}
}
