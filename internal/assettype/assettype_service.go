package assettype

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	assettypeerrors "go-asset/internal/assettype/errors"
	"go-asset/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKeyAll = "asset_types:all"
	cacheTTL    = 30 * time.Minute
)

var maxPercentage = decimal.NewFromInt(100)

//go:generate mockgen -source=assettype_service.go -destination=mock/assettype_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]AssetTypeResponse, error)
	GetByID(ctx context.Context, id string) (AssetTypeResponse, error)
	Create(ctx context.Context, req AssetTypeRequest) (AssetTypeResponse, error)
	Update(ctx context.Context, id string, req AssetTypeRequest) (AssetTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("assettype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assettype.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]AssetTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKeyAll).Bytes(); err == nil {
			var res []AssetTypeResponse
			if json.Unmarshal(cached, &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKeyAll, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		res := make([]AssetTypeResponse, len(types))
		for i, t := range types {
			res[i] = mapToResponse(t)
		}

		if s.rdb != nil {
			payload, _ := json.Marshal(res)
			if err := s.rdb.Set(ctx, cacheKeyAll, payload, cacheTTL).Err(); err != nil {
				s.logger.Warn("cache asset types failed", zap.Error(err))
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]AssetTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AssetTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssetTypeResponse{}, assettypeerrors.ErrInvalidAssetTypeID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) Create(ctx context.Context, req AssetTypeRequest) (AssetTypeResponse, error) {
	name := strings.TrimSpace(req.AssetTypeName)
	if err := validatePercentage(req.DepreciationPercentage); err != nil {
		return AssetTypeResponse{}, err
	}
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return AssetTypeResponse{}, err
	}

	t := &AssetType{
		ID:                     uuid.New(),
		AssetTypeName:          name,
		Description:            req.Description,
		DepreciationPercentage: req.DepreciationPercentage.Round(2),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return AssetTypeResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("asset type created",
		zap.String("asset_type_id", t.ID.String()),
		zap.String("name", t.AssetTypeName),
	)
	s.invalidate(ctx)
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req AssetTypeRequest) (AssetTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssetTypeResponse{}, assettypeerrors.ErrInvalidAssetTypeID
	}
	if err := validatePercentage(req.DepreciationPercentage); err != nil {
		return AssetTypeResponse{}, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssetTypeResponse{}, mapRepositoryError(err)
	}

	name := strings.TrimSpace(req.AssetTypeName)
	if err := s.ensureNameFree(ctx, name, t.ID); err != nil {
		return AssetTypeResponse{}, err
	}

	t.AssetTypeName = name
	t.Description = req.Description
	t.DepreciationPercentage = req.DepreciationPercentage.Round(2)

	if err := s.repo.Update(ctx, t); err != nil {
		return AssetTypeResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return assettypeerrors.ErrInvalidAssetTypeID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return assettypeerrors.ErrAssetTypeNameExists
	}
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyAll).Err(); err != nil {
		s.logger.Warn("invalidate asset types cache failed", zap.Error(err))
	}
}

func validatePercentage(p *decimal.Decimal) error {
	if p == nil || p.IsNegative() || p.GreaterThan(maxPercentage) {
		return assettypeerrors.ErrInvalidPercentage
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return assettypeerrors.ErrAssetTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_asset_type_name":
			return assettypeerrors.ErrAssetTypeNameExists
		case pgErr.Code == "23503":
			return assettypeerrors.ErrAssetTypeInUse
		case pgErr.Code == "23514":
			return assettypeerrors.ErrInvalidPercentage
		}
	}
	return err
}

func mapToResponse(t AssetType) AssetTypeResponse {
	return AssetTypeResponse{
		ID:                     t.ID.String(),
		AssetTypeName:          t.AssetTypeName,
		Description:            t.Description,
		DepreciationPercentage: t.DepreciationPercentage,
		CreatedAt:              t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              t.UpdatedAt.Format(time.RFC3339),
	}
}
