package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	asseterrors "go-asset/internal/asset/errors"
	"go-asset/internal/depreciation"
	"go-asset/internal/domain"
	"go-asset/internal/events"
	"go-asset/internal/messaging/kafka"
	"go-asset/internal/shared/contextutil"
	"go-asset/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const assetCodeCounter = "asset_code"

//go:generate mockgen -source=asset_service.go -destination=mock/asset_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAssetRequest) (AssetResponse, error)
	GetAll(ctx context.Context, filter AssetFilter) ([]AssetResponse, int64, error)
	GetByID(ctx context.Context, id string) (AssetResponse, error)
	Update(ctx context.Context, id string, req UpdateAssetRequest) (AssetResponse, error)
	Delete(ctx context.Context, id string) error
}

// Depreciator back-fills history inside the creating transaction.
type Depreciator interface {
	CalculateForAssetTx(ctx context.Context, tx *sql.Tx, assetID string) (depreciation.CalculationResult, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	depreciator Depreciator
	outbox      kafka.OutboxRepository
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	depreciator Depreciator,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("asset.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		depreciator: depreciator,
		outbox:      outboxRepo,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateAssetRequest) (AssetResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	billDate, err := time.Parse(time.DateOnly, req.BillDate)
	if err != nil || billDate.After(s.now().UTC()) {
		return AssetResponse{}, asseterrors.ErrInvalidBillDate
	}

	status := req.Status
	if status == "" {
		status = domain.AssetInUse
	}
	if status != domain.AssetInUse && status != domain.AssetIdle {
		return AssetResponse{}, asseterrors.ErrInvalidStatus
	}

	category := req.Category
	if category == "" {
		category = domain.AssetCategoryIT
	}
	if !domain.IsAssetCategory(category) {
		return AssetResponse{}, asseterrors.ErrInvalidCategory
	}

	assetTypeID, err := uuid.Parse(req.AssetTypeID)
	if err != nil {
		return AssetResponse{}, asseterrors.ErrInvalidReferenceID
	}
	departmentID, branchID, err := parseLocation(req.DepartmentID, req.BranchID)
	if err != nil {
		return AssetResponse{}, err
	}

	if req.OpeningBalance == nil {
		return AssetResponse{}, asseterrors.ErrOpeningBalanceRequired
	}
	opening := req.OpeningBalance.Round(2)
	addition := decimal.Zero
	if req.Addition != nil {
		addition = req.Addition.Round(2)
	}
	if opening.IsNegative() || addition.IsNegative() {
		return AssetResponse{}, asseterrors.ErrNegativeAmount
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create asset begin tx failed", zap.Error(err))
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, assetCodeCounter)
	if err != nil {
		log.Error("create asset generate code failed", zap.Error(err))
		return AssetResponse{}, err
	}

	a := &Asset{
		ID:                     uuid.New(),
		AssetCode:              fmt.Sprintf("AST-%06d", seq),
		AssetName:              strings.TrimSpace(req.AssetName),
		SerialNumber:           strings.TrimSpace(req.SerialNumber),
		Description:            req.Description,
		AssetCategory:          category,
		Quantity:               quantity,
		AssetTypeID:            assetTypeID,
		DepartmentID:           departmentID,
		BranchID:               branchID,
		UserID:                 parseOptionalUUID(req.UserID),
		BillDate:               billDate,
		OpeningBalance:         opening,
		Addition:               addition,
		WDV:                    opening.Add(addition),
		CumulativeDepreciation: decimal.Zero,
		AssetUsageStatus:       status,
		Remarks:                req.Remarks,
	}
	if a.UserID == nil {
		if uid, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
			a.UserID = &uid
		}
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, a); err != nil {
		log.Error("create asset persist failed", zap.Error(err))
		return AssetResponse{}, mapRepositoryError(err)
	}

	calc, err := s.depreciator.CalculateForAssetTx(ctx, tx, a.ID.String())
	if err != nil {
		log.Error("create asset depreciation backfill failed", zap.String("asset_id", a.ID.String()), zap.Error(err))
		return AssetResponse{}, err
	}

	if err := s.enqueue(ctx, tx, events.AssetCreated, a); err != nil {
		return AssetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create asset commit failed", zap.String("request_id", rid), zap.Error(err))
		return AssetResponse{}, err
	}

	log.Info("asset created",
		zap.String("asset_id", a.ID.String()),
		zap.String("asset_code", a.AssetCode),
		zap.Int("depreciation_records", calc.RecordsWritten),
	)

	a.WDV = calc.WDV
	a.CumulativeDepreciation = calc.CumulativeDepreciation
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, filter AssetFilter) ([]AssetResponse, int64, error) {
	if filter.Status != "" && !domain.IsAssetStatus(filter.Status) {
		return nil, 0, asseterrors.ErrInvalidStatusFilter
	}
	if filter.Category != "" && !domain.IsAssetCategory(filter.Category) {
		return nil, 0, asseterrors.ErrInvalidCategory
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	assets, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AssetResponse, len(assets))
	for i, a := range assets {
		res[i] = mapToResponse(a)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AssetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssetResponse{}, asseterrors.ErrInvalidAssetID
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAssetRequest) (AssetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssetResponse{}, asseterrors.ErrInvalidAssetID
	}
	if req.Status != domain.AssetInUse && req.Status != domain.AssetIdle {
		return AssetResponse{}, asseterrors.ErrInvalidStatus
	}
	if req.Category != "" && !domain.IsAssetCategory(req.Category) {
		return AssetResponse{}, asseterrors.ErrInvalidCategory
	}
	departmentID, branchID, err := parseLocation(req.DepartmentID, req.BranchID)
	if err != nil {
		return AssetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update asset begin tx failed", zap.Error(err))
		return AssetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}
	if a.AssetUsageStatus == domain.AssetScrapped {
		return AssetResponse{}, asseterrors.ErrAssetScrapped
	}

	a.AssetName = strings.TrimSpace(req.AssetName)
	a.SerialNumber = strings.TrimSpace(req.SerialNumber)
	a.Description = req.Description
	if req.Quantity > 0 {
		a.Quantity = req.Quantity
	}
	if req.Category != "" {
		a.AssetCategory = req.Category
	}
	a.DepartmentID = departmentID
	a.BranchID = branchID
	a.UserID = parseOptionalUUID(req.UserID)
	a.AssetUsageStatus = req.Status
	a.Remarks = req.Remarks

	if err := qtx.Update(ctx, a); err != nil {
		return AssetResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.AssetUpdated, a); err != nil {
		return AssetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AssetResponse{}, err
	}

	a.UpdatedAt = s.now().UTC()
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return asseterrors.ErrInvalidAssetID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	outstanding, err := qtx.HasOutstandingScrapRequest(ctx, id)
	if err != nil {
		return err
	}
	if outstanding {
		return asseterrors.ErrOutstandingScrapRequest
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.AssetDeleted, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("asset deleted", zap.String("asset_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, a *Asset) error {
	if s.outbox == nil {
		return nil
	}

	ev := events.AssetEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		AssetID:    a.ID.String(),
		AssetName:  a.AssetName,
		ActorID:    contextutil.GetUserID(ctx),
		OccurredAt: s.now().UTC(),
	}
	row, err := kafka.NewOutboxEvent(ev.RequestID, kafka.AggregateAsset, ev.AssetID, ev.EventType, events.AssetLifecycleTopic, ev)
	if err != nil {
		return err
	}
	row.ID = ev.EventID

	if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("asset outbox persist failed",
			zap.String("asset_id", ev.AssetID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asseterrors.ErrAssetNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return asseterrors.ErrInvalidReference
	}
	return err
}

func parseLocation(departmentID, branchID string) (uuid.UUID, uuid.UUID, error) {
	dept, err := uuid.Parse(departmentID)
	if err != nil {
		return uuid.Nil, uuid.Nil, asseterrors.ErrInvalidReferenceID
	}
	branch, err := uuid.Parse(branchID)
	if err != nil {
		return uuid.Nil, uuid.Nil, asseterrors.ErrInvalidReferenceID
	}
	return dept, branch, nil
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func formatOptional(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	v := t.Format(layout)
	return &v
}

func mapToResponse(a Asset) AssetResponse {
	res := AssetResponse{
		ID:                     a.ID.String(),
		AssetCode:              a.AssetCode,
		AssetName:              a.AssetName,
		SerialNumber:           a.SerialNumber,
		Description:            a.Description,
		AssetCategory:          a.AssetCategory,
		Quantity:               a.Quantity,
		AssetTypeID:            a.AssetTypeID.String(),
		AssetTypeName:          a.AssetTypeName,
		DepreciationPercentage: a.DepreciationPercentage,
		DepartmentID:           a.DepartmentID.String(),
		DepartmentName:         a.DepartmentName,
		BranchID:               a.BranchID.String(),
		BranchName:             a.BranchName,
		UserName:               a.UserName,
		BillDate:               a.BillDate.Format(time.DateOnly),
		OpeningBalance:         a.OpeningBalance,
		Addition:               a.Addition,
		WDV:                    a.WDV,
		CumulativeDepreciation: a.CumulativeDepreciation,
		LastDepreciationDate:   formatOptional(a.LastDepreciationDate, time.RFC3339),
		AssetUsageStatus:       a.AssetUsageStatus,
		ScrappedAtDate:         formatOptional(a.ScrappedAtDate, time.RFC3339),
		Remarks:                a.Remarks,
		CreatedAt:              a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              a.UpdatedAt.Format(time.RFC3339),
	}
	if a.UserID != nil {
		uid := a.UserID.String()
		res.UserID = &uid
	}
	return res
}
