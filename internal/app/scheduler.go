package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-asset/internal/config"
	"go-asset/internal/depreciation"
	"go-asset/internal/messaging/kafka"
	"go-asset/internal/shared/connection"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type batchRunner interface {
	BatchUpdate(ctx context.Context) (depreciation.BatchResult, error)
}

func newDepreciationScheduler(spec string, runner batchRunner, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() { runDepreciationBatch(context.Background(), runner, logger) })
	if err != nil {
		return nil, err
	}
	return c, nil
}

func runDepreciationBatch(ctx context.Context, runner batchRunner, logger *zap.Logger) {
	result, err := runner.BatchUpdate(ctx)
	if err != nil {
		logger.Error("scheduled depreciation failed", zap.Error(err))
		return
	}
	logger.Info("scheduled depreciation finished",
		zap.Int("updated", result.AssetsUpdated),
		zap.Int("skipped", result.AssetsSkipped),
		zap.Int("failed", result.AssetsFailed),
	)
}

// RunScheduler fires the depreciation batch on cfg.Depreciation.CronSpec.
func RunScheduler(cfg *config.Config) error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	service := depreciation.NewService(
		sqlDB,
		depreciation.NewRepository(gormDB),
		kafka.NewOutboxRepository(gormDB),
		rdb,
		depreciationOptions(cfg.Depreciation),
	)

	c, err := newDepreciationScheduler(cfg.Depreciation.CronSpec, service, logger)
	if err != nil {
		return err
	}
	c.Start()
	logger.Info("scheduler started", zap.String("spec", cfg.Depreciation.CronSpec))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	<-c.Stop().Done()

	return nil
}
