package main

import (
	"flag"

	"go-asset/internal/app"
	"go-asset/internal/bootstrap"
	"go-asset/internal/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 1, "number of migrations to roll back")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunMigrations(cfg, *down, *steps); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migration finished")
}
