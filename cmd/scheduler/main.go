package main

import (
	"go-asset/internal/app"
	"go-asset/internal/bootstrap"
	"go-asset/internal/config"
	"go-asset/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
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

	apperror.Init()

	if err := app.RunScheduler(cfg); err != nil {
		logger.Fatal("run scheduler failed", zap.Error(err))
	}
}
