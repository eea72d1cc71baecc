package app

import (
	"fmt"

	"github.com/ilovedelay/i-love-delay/internal/config"
	"github.com/ilovedelay/i-love-delay/internal/storage"
)

var globalStore storage.Store

func MustOpenLocalStore() {
	cfg := config.Global().Storage

	switch cfg.Driver {
	case config.StorageDriverSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLitePath).
				Msg("failed to open sqlite store")
			panic(err)
		}
		globalStore = store
		globalLogger.Info().
			Str("path", cfg.SQLitePath).
			Msg("opened sqlite store")
	case config.StorageDriverMemory:
		globalStore = storage.NewMemoryStore()
		globalLogger.Warn().Msg("using in-memory store, data will not survive restarts")
	default:
		globalLogger.Error().
			Str("driver", cfg.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Driver))
	}
}

func CloseLocalStore() {
	err := globalStore.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close local store")
		return
	}
	globalLogger.Info().Msg("closed local store")
}
