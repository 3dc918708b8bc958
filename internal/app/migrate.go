package app

import (
	"go-asset/internal/config"
	"go-asset/internal/shared/database"

	"go.uber.org/zap"
)

// RunMigrations applies every pending migration, or rolls back steps when down is set.
func RunMigrations(cfg *config.Config, down bool, steps int) error {
	logger := zap.L().Named("app.migrate")
	if down {
		return database.MigrateDown(cfg.Database.URL(), steps, logger)
	}
	return database.MigrateUp(cfg.Database.URL(), logger)
}
