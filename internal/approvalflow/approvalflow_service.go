package approvalflow

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	approvalflowerrors "go-asset/internal/approvalflow/errors"
	"go-asset/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	chainCachePrefix = "approval_chain:"
	chainCacheTTL    = 30 * time.Minute
)

//go:generate mockgen -source=approvalflow_service.go -destination=mock/approvalflow_service_mock.go -package=mock
type Service interface {
	AddLevel(ctx context.Context, req CreateLevelRequest) (LevelResponse, error)
	UpdateLevel(ctx context.Context, id string, req UpdateLevelRequest) (LevelResponse, error)
	DeleteLevel(ctx context.Context, id string) error
	ListLevels(ctx context.Context, assetTypeID string) ([]LevelResponse, error)
	GetChain(ctx context.Context, assetTypeID string) ([]LevelResponse, error)
}

type RoleChecker interface {
	RoleExists(ctx context.Context, id string) (bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	roles  RoleChecker
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roles RoleChecker, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("approvalflow.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approvalflow.service")
	}
	return &service{db: db, repo: repo, roles: roles, rdb: rdb, logger: l}
}

func (s *service) AddLevel(ctx context.Context, req CreateLevelRequest) (LevelResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if req.LevelNumber < 1 {
		return LevelResponse{}, approvalflowerrors.ErrInvalidLevelNumber
	}
	assetTypeID, err := uuid.Parse(req.AssetTypeID)
	if err != nil {
		return LevelResponse{}, approvalflowerrors.ErrAssetTypeNotFound
	}
	roleID, err := s.ensureRole(ctx, req.RoleID)
	if err != nil {
		return LevelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("add approval level begin tx failed", zap.Error(err))
		return LevelResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	exists, err := qtx.AssetTypeExists(ctx, req.AssetTypeID)
	if err != nil {
		return LevelResponse{}, err
	}
	if !exists {
		return LevelResponse{}, approvalflowerrors.ErrAssetTypeNotFound
	}

	taken, err := qtx.FindByNumber(ctx, req.AssetTypeID, req.LevelNumber)
	if err != nil {
		return LevelResponse{}, err
	}
	if taken != nil {
		return LevelResponse{}, approvalflowerrors.ErrDuplicateLevelNumber
	}

	level := &ApprovalLevel{
		ID:          uuid.New(),
		AssetTypeID: assetTypeID,
		LevelNumber: req.LevelNumber,
		RoleID:      roleID,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, level); err != nil {
		return LevelResponse{}, mapRepositoryError(err)
	}

	res, err := s.linkedResponse(ctx, qtx, req.AssetTypeID, level.ID)
	if err != nil {
		return LevelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("add approval level commit failed", zap.Error(err))
		return LevelResponse{}, mapRepositoryError(err)
	}

	log.Info("approval level added",
		zap.String("level_id", level.ID.String()),
		zap.String("asset_type_id", req.AssetTypeID),
		zap.Int("level_number", level.LevelNumber),
	)
	s.invalidate(ctx, req.AssetTypeID)
	return res, nil
}

func (s *service) UpdateLevel(ctx context.Context, id string, req UpdateLevelRequest) (LevelResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return LevelResponse{}, approvalflowerrors.ErrInvalidLevelID
	}
	if req.LevelNumber < 1 {
		return LevelResponse{}, approvalflowerrors.ErrInvalidLevelNumber
	}
	roleID, err := s.ensureRole(ctx, req.RoleID)
	if err != nil {
		return LevelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update approval level begin tx failed", zap.Error(err))
		return LevelResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	level, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LevelResponse{}, mapRepositoryError(err)
	}
	typeID := level.AssetTypeID.String()

	if req.LevelNumber != level.LevelNumber {
		taken, err := qtx.FindByNumber(ctx, typeID, req.LevelNumber)
		if err != nil {
			return LevelResponse{}, err
		}
		if taken != nil && taken.ID != level.ID {
			return LevelResponse{}, approvalflowerrors.ErrDuplicateLevelNumber
		}
	}

	level.LevelNumber = req.LevelNumber
	level.RoleID = roleID
	level.Description = req.Description
	if err := qtx.Update(ctx, level); err != nil {
		return LevelResponse{}, mapRepositoryError(err)
	}

	res, err := s.linkedResponse(ctx, qtx, typeID, level.ID)
	if err != nil {
		return LevelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update approval level commit failed", zap.Error(err))
		return LevelResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, typeID)
	return res, nil
}

func (s *service) DeleteLevel(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return approvalflowerrors.ErrInvalidLevelID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete approval level begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	level, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	inUse, err := qtx.IsCurrentLevelOfPending(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return approvalflowerrors.ErrLevelInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete approval level commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	log.Info("approval level deleted",
		zap.String("level_id", id),
		zap.String("asset_type_id", level.AssetTypeID.String()),
	)
	s.invalidate(ctx, level.AssetTypeID.String())
	return nil
}

func (s *service) ListLevels(ctx context.Context, assetTypeID string) ([]LevelResponse, error) {
	if assetTypeID != "" {
		return s.GetChain(ctx, assetTypeID)
	}

	levels, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapChain(levels), nil
}

func (s *service) GetChain(ctx context.Context, assetTypeID string) ([]LevelResponse, error) {
	if _, err := uuid.Parse(assetTypeID); err != nil {
		return nil, approvalflowerrors.ErrAssetTypeNotFound
	}

	key := chainCachePrefix + assetTypeID
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var res []LevelResponse
			if json.Unmarshal(cached, &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		levels, err := s.repo.ListByAssetType(ctx, assetTypeID)
		if err != nil {
			return nil, err
		}
		res := mapChain(levels)

		if s.rdb != nil {
			payload, _ := json.Marshal(res)
			if err := s.rdb.Set(ctx, key, payload, chainCacheTTL).Err(); err != nil {
				s.logger.Warn("cache approval chain failed", zap.Error(err))
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LevelResponse), nil
}

func (s *service) ensureRole(ctx context.Context, roleID string) (uuid.UUID, error) {
	id, err := uuid.Parse(roleID)
	if err != nil {
		return uuid.Nil, approvalflowerrors.ErrRoleNotFound
	}
	ok, err := s.roles.RoleExists(ctx, roleID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, approvalflowerrors.ErrRoleNotFound
	}
	return id, nil
}

func (s *service) linkedResponse(ctx context.Context, repo Repository, assetTypeID string, id uuid.UUID) (LevelResponse, error) {
	levels, err := repo.ListByAssetType(ctx, assetTypeID)
	if err != nil {
		return LevelResponse{}, err
	}
	for _, l := range mapChain(levels) {
		if l.ID == id.String() {
			return l, nil
		}
	}
	return LevelResponse{}, approvalflowerrors.ErrLevelNotFound
}

func (s *service) invalidate(ctx context.Context, assetTypeID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, chainCachePrefix+assetTypeID).Err(); err != nil {
		s.logger.Warn("invalidate approval chain cache failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalflowerrors.ErrLevelNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_approval_level_number":
			return approvalflowerrors.ErrDuplicateLevelNumber
		case pgErr.Code == "23503" && pgErr.ConstraintName == "approval_levels_role_id_fkey":
			return approvalflowerrors.ErrRoleNotFound
		case pgErr.Code == "23503" && pgErr.ConstraintName == "approval_levels_asset_type_id_fkey":
			return approvalflowerrors.ErrAssetTypeNotFound
		case pgErr.Code == "23503":
			return approvalflowerrors.ErrLevelHasHistory
		}
	}
	return err
}

func mapChain(levels []ApprovalLevel) []LevelResponse {
	linked := LinkChain(levels)
	res := make([]LevelResponse, len(linked))
	for i, l := range linked {
		res[i] = mapToResponse(l)
	}
	return res
}

func mapToResponse(l LinkedLevel) LevelResponse {
	return LevelResponse{
		ID:              l.ID.String(),
		AssetTypeID:     l.AssetTypeID.String(),
		AssetTypeName:   l.AssetTypeName,
		LevelNumber:     l.LevelNumber,
		RoleID:          l.RoleID.String(),
		RoleName:        l.RoleName,
		Description:     l.Description,
		NextLevelID:     uuidString(l.NextLevelID),
		PreviousLevelID: uuidString(l.PreviousLevelID),
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
