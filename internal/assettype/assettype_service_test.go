package assettype_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-asset/internal/assettype"
	assettypeerrors "go-asset/internal/assettype/errors"
	assettypeMock "go-asset/internal/assettype/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const cacheKey = "asset_types:all"

type serviceDeps struct {
	service   assettype.Service
	repo      *assettypeMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := assettypeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		service:   assettype.NewService(repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAssetTypeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]assettype.AssetTypeResponse{{ID: "1", AssetTypeName: "Laptop"}})

		deps.redismock.ExpectGet(cacheKey).SetVal(string(cached))
		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)

		res, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "Laptop", res[0].AssetTypeName)
	})

	t.Run("cache miss", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return([]assettype.AssetType{
			{ID: uuid.New(), AssetTypeName: "Vehicle", DepreciationPercentage: decimal.NewFromInt(15)},
		}, nil)
		deps.redismock.CustomMatch(matchKey).ExpectSet(cacheKey, "", 30*time.Minute).SetVal("OK")

		res, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.True(t, decimal.NewFromInt(15).Equal(res[0].DepreciationPercentage))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestAssetTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByName(ctx, "Laptop").Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, at *assettype.AssetType) error {
				assert.Equal(t, "Laptop", at.AssetTypeName)
				assert.Equal(t, "20", at.DepreciationPercentage.String())
				return nil
			})
		deps.redismock.ExpectDel(cacheKey).SetVal(1)

		res, err := deps.service.Create(ctx, assettype.AssetTypeRequest{
			AssetTypeName:          " Laptop ",
			DepreciationPercentage: pct("20"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Laptop", res.AssetTypeName)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("name taken", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByName(ctx, "Laptop").Return(&assettype.AssetType{ID: uuid.New()}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Create(ctx, assettype.AssetTypeRequest{AssetTypeName: "Laptop", DepreciationPercentage: pct("20")})

		assert.ErrorIs(t, err, assettypeerrors.ErrAssetTypeNameExists)
	})

	t.Run("insert race", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByName(ctx, "Laptop").Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_asset_type_name"})

		_, err := deps.service.Create(ctx, assettype.AssetTypeRequest{AssetTypeName: "Laptop", DepreciationPercentage: pct("20")})

		assert.ErrorIs(t, err, assettypeerrors.ErrAssetTypeNameExists)
	})

	for _, p := range []string{"-1", "100.01"} {
		t.Run("percentage out of range "+p, func(t *testing.T) {
			deps := setupServiceTest(t)
			deps.repo.EXPECT().FindByName(gomock.Any(), gomock.Any()).Times(0)

			_, err := deps.service.Create(ctx, assettype.AssetTypeRequest{AssetTypeName: "X", DepreciationPercentage: pct(p)})

			assert.ErrorIs(t, err, assettypeerrors.ErrInvalidPercentage)
		})
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByName(ctx, "Land").Return(nil, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cacheKey).SetVal(0)

		_, err := deps.service.Create(ctx, assettype.AssetTypeRequest{AssetTypeName: "Land", DepreciationPercentage: pct("0")})
		assert.NoError(t, err)
	})
}

func TestAssetTypeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("keeping own name is allowed", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&assettype.AssetType{ID: id, AssetTypeName: "Laptop"}, nil)
		deps.repo.EXPECT().FindByName(ctx, "Laptop").Return(&assettype.AssetType{ID: id, AssetTypeName: "Laptop"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cacheKey).SetVal(1)

		res, err := deps.service.Update(ctx, id.String(), assettype.AssetTypeRequest{AssetTypeName: "Laptop", DepreciationPercentage: pct("25")})

		assert.NoError(t, err)
		assert.Equal(t, "25", res.DepreciationPercentage.String())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), assettype.AssetTypeRequest{AssetTypeName: "Laptop", DepreciationPercentage: pct("25")})
		assert.ErrorIs(t, err, assettypeerrors.ErrAssetTypeNotFound)
	})
}

func TestAssetTypeService_Delete_InUse(t *testing.T) {
	deps := setupServiceTest(t)
	id := uuid.NewString()

	deps.repo.EXPECT().Delete(gomock.Any(), id).Return(&pgconn.PgError{Code: "23503"})

	err := deps.service.Delete(context.Background(), id)
	assert.ErrorIs(t, err, assettypeerrors.ErrAssetTypeInUse)
}

// matchKey compares SET commands on everything but the marshalled payload.
func matchKey(expected, actual []interface{}) error {
	if len(expected) != len(actual) || expected[1] != actual[1] {
		return fmt.Errorf("unexpected redis args %v", actual)
	}
	return nil
}
