package depreciation

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	depreciationerrors "go-asset/internal/depreciation/errors"
	"go-asset/internal/domain"
	"go-asset/internal/events"
	"go-asset/internal/messaging/kafka"
	"go-asset/internal/metrics"
	"go-asset/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const batchLockKey = "depreciation:batch:lock"

//go:generate mockgen -source=depreciation_service.go -destination=mock/depreciation_service_mock.go -package=mock
type Service interface {
	CalculateForAsset(ctx context.Context, assetID string) (CalculationResult, error)
	// CalculateForAssetTx runs inside a caller-owned transaction and never commits.
	CalculateForAssetTx(ctx context.Context, tx *sql.Tx, assetID string) (CalculationResult, error)
	BatchUpdate(ctx context.Context) (BatchResult, error)
	History(ctx context.Context, assetID string) ([]DepreciationResponse, error)
}

type Options struct {
	Concurrency  int
	AssetTimeout time.Duration
	LockTTL      time.Duration
	Now          func() time.Time
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	opts   Options
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("depreciation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("depreciation.service")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.AssetTimeout <= 0 {
		opts.AssetTimeout = 30 * time.Second
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, rdb: rdb, opts: opts, logger: l}
}

func (s *service) CalculateForAsset(ctx context.Context, assetID string) (CalculationResult, error) {
	if _, err := uuid.Parse(assetID); err != nil {
		return CalculationResult{}, depreciationerrors.ErrInvalidAssetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("calculate depreciation begin tx failed", zap.Error(err))
		return CalculationResult{}, err
	}
	defer tx.Rollback()

	res, err := s.calculate(ctx, s.repo.WithTx(tx), assetID)
	if err != nil {
		return CalculationResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("calculate depreciation commit failed", zap.String("asset_id", assetID), zap.Error(err))
		return CalculationResult{}, err
	}
	return res, nil
}

func (s *service) CalculateForAssetTx(ctx context.Context, tx *sql.Tx, assetID string) (CalculationResult, error) {
	return s.calculate(ctx, s.repo.WithTx(tx), assetID)
}

func (s *service) calculate(ctx context.Context, qtx Repository, assetID string) (CalculationResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	subject, err := qtx.FindSubject(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalculationResult{}, depreciationerrors.ErrAssetNotFound
		}
		log.Error("load depreciation subject failed", zap.String("asset_id", assetID), zap.Error(err))
		return CalculationResult{}, err
	}

	evalDate := s.opts.Now().UTC()
	if subject.AssetUsageStatus == domain.AssetScrapped && subject.ScrappedAtDate != nil {
		evalDate = subject.ScrappedAtDate.UTC()
	}

	result := CalculationResult{
		AssetID:                assetID,
		WDV:                    subject.WDV,
		CumulativeDepreciation: subject.CumulativeDepreciation,
		EvaluatedAt:            dayOf(evalDate).Format(time.DateOnly),
	}

	if subject.LastDepreciationDate != nil && sameDay(*subject.LastDepreciationDate, evalDate) {
		log.Debug("depreciation already current", zap.String("asset_id", assetID))
		result.Skipped = true
		return result, nil
	}

	prior, err := qtx.LatestClosedRecord(ctx, assetID)
	if err != nil {
		log.Error("load latest depreciation record failed", zap.String("asset_id", assetID), zap.Error(err))
		return CalculationResult{}, err
	}
	var priorRecord *YearRecord
	if prior != nil {
		rec := prior.toYearRecord()
		priorRecord = &rec
	}

	schedule := Schedule(subject.basis(), priorRecord, evalDate)
	if len(schedule) == 0 {
		result.Skipped = true
		return result, nil
	}

	now := s.opts.Now().UTC()
	rows := make([]AssetDepreciation, len(schedule))
	for i, rec := range schedule {
		rows[i] = AssetDepreciation{
			ID:                     uuid.New(),
			AssetID:                subject.ID,
			Year:                   rec.Year,
			OpeningBalance:         rec.OpeningBalance,
			Addition:               rec.Addition,
			Depreciation:           rec.Depreciation,
			WDV:                    rec.WDV,
			CumulativeDepreciation: rec.CumulativeDepreciation,
			PeriodStart:            rec.PeriodStart,
			PeriodEnd:              rec.PeriodEnd,
			CalculatedAt:           now,
		}
	}

	if err := qtx.UpsertRecords(ctx, rows); err != nil {
		log.Error("persist depreciation records failed", zap.String("asset_id", assetID), zap.Error(err))
		return CalculationResult{}, err
	}

	latest := schedule[len(schedule)-1]
	if err := qtx.UpdateAssetBook(ctx, assetID, latest.WDV, latest.CumulativeDepreciation, evalDate); err != nil {
		log.Error("update asset book value failed", zap.String("asset_id", assetID), zap.Error(err))
		return CalculationResult{}, err
	}

	result.RecordsWritten = len(rows)
	result.WDV = latest.WDV
	result.CumulativeDepreciation = latest.CumulativeDepreciation

	log.Debug("depreciation calculated",
		zap.String("asset_id", assetID),
		zap.Int("records", len(rows)),
		zap.String("wdv", latest.WDV.String()),
	)
	return result, nil
}

func (s *service) BatchUpdate(ctx context.Context) (BatchResult, error) {
	start := time.Now()
	rid := contextutil.GetRequestID(ctx)

	if s.rdb != nil {
		acquired, err := s.rdb.SetNX(ctx, batchLockKey, rid, s.opts.LockTTL).Result()
		if err != nil {
			// best effort: asset rows are still locked one by one
			s.logger.Warn("depreciation batch lock unavailable", zap.Error(err))
		} else if !acquired {
			s.logger.Warn("depreciation batch already running")
			return BatchResult{}, depreciationerrors.ErrBatchInProgress
		} else {
			defer func() {
				if err := s.rdb.Del(context.WithoutCancel(ctx), batchLockKey).Err(); err != nil {
					s.logger.Error("release depreciation batch lock failed", zap.Error(err))
				}
			}()
		}
	}

	ids, err := s.repo.ListDepreciableAssetIDs(ctx)
	if err != nil {
		s.logger.Error("list depreciable assets failed", zap.Error(err))
		return BatchResult{}, err
	}

	s.logger.Info("depreciation batch started", zap.String("request_id", rid), zap.Int("assets", len(ids)))

	result := BatchResult{Failures: []BatchFailure{}}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			actx, cancel := context.WithTimeout(ctx, s.opts.AssetTimeout)
			defer cancel()

			res, err := s.CalculateForAsset(actx, id)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.AssetsFailed++
				result.Failures = append(result.Failures, BatchFailure{AssetID: id, Error: err.Error()})
				s.logger.Warn("asset depreciation failed", zap.String("asset_id", id), zap.Error(err))
			case res.Skipped:
				result.AssetsSkipped++
			default:
				result.AssetsUpdated++
			}
			return nil
		})
	}
	_ = g.Wait()

	result.Success = result.AssetsFailed == 0
	metrics.RecordDepreciationBatch(result.AssetsUpdated, result.AssetsFailed, time.Since(start))

	if s.outbox != nil {
		ev := events.DepreciationBatchEvent{
			EventID:       uuid.NewString(),
			EventType:     events.DepreciationBatchCompleted,
			AssetsUpdated: result.AssetsUpdated,
			AssetsFailed:  result.AssetsFailed,
			OccurredAt:    time.Now().UTC(),
		}
		row, err := kafka.NewOutboxEvent(rid, kafka.AggregateDepreciation, ev.EventID, ev.EventType, events.DepreciationTopic, ev)
		if err == nil {
			err = s.outbox.Create(ctx, row)
		}
		if err != nil {
			s.logger.Error("depreciation batch outbox persist failed", zap.Error(err))
		}
	}

	s.logger.Info("depreciation batch finished",
		zap.String("request_id", rid),
		zap.Int("updated", result.AssetsUpdated),
		zap.Int("skipped", result.AssetsSkipped),
		zap.Int("failed", result.AssetsFailed),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *service) History(ctx context.Context, assetID string) ([]DepreciationResponse, error) {
	if _, err := uuid.Parse(assetID); err != nil {
		return nil, depreciationerrors.ErrInvalidAssetID
	}

	exists, err := s.repo.AssetExists(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, depreciationerrors.ErrAssetNotFound
	}

	rows, err := s.repo.ListByAsset(ctx, assetID)
	if err != nil {
		s.logger.Error("list depreciation history failed", zap.String("asset_id", assetID), zap.Error(err))
		return nil, err
	}

	res := make([]DepreciationResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(r AssetDepreciation) DepreciationResponse {
	return DepreciationResponse{
		ID:                     r.ID.String(),
		AssetID:                r.AssetID.String(),
		Year:                   r.Year,
		OpeningBalance:         r.OpeningBalance,
		Addition:               r.Addition,
		Depreciation:           r.Depreciation,
		WDV:                    r.WDV,
		CumulativeDepreciation: r.CumulativeDepreciation,
		PeriodStart:            r.PeriodStart.Format(time.DateOnly),
		PeriodEnd:              r.PeriodEnd.Format(time.DateOnly),
		CalculatedAt:           r.CalculatedAt.Format(time.RFC3339),
	}
}
