package approvalflow_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-asset/internal/approvalflow"
	approvalflowerrors "go-asset/internal/approvalflow/errors"
	approvalflowMock "go-asset/internal/approvalflow/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRoleChecker struct {
	known map[string]bool
}

func (f *fakeRoleChecker) RoleExists(ctx context.Context, id string) (bool, error) {
	return f.known[id], nil
}

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	repo      *approvalflowMock.MockRepository
	redismock redismock.ClientMock
	roles     *fakeRoleChecker
	service   approvalflow.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	t.Cleanup(func() { db.Close() })
	rdb, redisMock := redismock.NewClientMock()

	deps := &serviceDeps{
		sqlMock:   sqlMock,
		repo:      approvalflowMock.NewMockRepository(ctrl),
		redismock: redisMock,
		roles:     &fakeRoleChecker{known: map[string]bool{}},
	}
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).AnyTimes()
	deps.service = approvalflow.NewService(db, deps.repo, deps.roles, rdb)
	return deps
}

func TestApprovalFlowService_AddLevel(t *testing.T) {
	ctx := context.Background()
	typeID := uuid.New()
	roleID := uuid.NewString()

	t.Run("inserting between two levels relinks the chain", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true

		l1 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 1}
		l3 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 3}
		var created approvalflow.ApprovalLevel

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().AssetTypeExists(ctx, typeID.String()).Return(true, nil)
		deps.repo.EXPECT().FindByNumber(ctx, typeID.String(), 2).Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *approvalflow.ApprovalLevel) error {
				created = *l
				return nil
			})
		deps.repo.EXPECT().
			ListByAssetType(ctx, typeID.String()).
			DoAndReturn(func(context.Context, string) ([]approvalflow.ApprovalLevel, error) {
				return []approvalflow.ApprovalLevel{l1, created, l3}, nil
			})
		deps.redismock.ExpectDel("approval_chain:" + typeID.String()).SetVal(1)

		res, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 2,
			RoleID:      roleID,
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.LevelNumber)
		assert.Equal(t, l1.ID.String(), *res.PreviousLevelID)
		assert.Equal(t, l3.ID.String(), *res.NextLevelID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate level number", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().AssetTypeExists(ctx, typeID.String()).Return(true, nil)
		deps.repo.EXPECT().
			FindByNumber(ctx, typeID.String(), 1).
			Return(&approvalflow.ApprovalLevel{ID: uuid.New()}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 1,
			RoleID:      roleID,
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrDuplicateLevelNumber)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("concurrent insert hits unique constraint", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().AssetTypeExists(ctx, typeID.String()).Return(true, nil)
		deps.repo.EXPECT().FindByNumber(ctx, typeID.String(), 1).Return(nil, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_approval_level_number"})

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 1,
			RoleID:      roleID,
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrDuplicateLevelNumber)
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 1,
			RoleID:      uuid.NewString(),
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrRoleNotFound)
	})

	t.Run("unknown asset type", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().AssetTypeExists(ctx, typeID.String()).Return(false, nil)

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 1,
			RoleID:      roleID,
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrAssetTypeNotFound)
	})

	t.Run("malformed asset type id", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: "laptops",
			LevelNumber: 1,
			RoleID:      roleID,
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrAssetTypeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("level number below one", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.AddLevel(ctx, approvalflow.CreateLevelRequest{
			AssetTypeID: typeID.String(),
			LevelNumber: 0,
			RoleID:      roleID,
		})

		assert.ErrorIs(t, err, approvalflowerrors.ErrInvalidLevelNumber)
	})
}

func TestApprovalFlowService_UpdateLevel(t *testing.T) {
	ctx := context.Background()
	typeID := uuid.New()
	roleID := uuid.NewString()

	t.Run("number held by another level", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true
		level := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 1}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().FindByID(ctx, level.ID.String()).Return(level, nil)
		deps.repo.EXPECT().
			FindByNumber(ctx, typeID.String(), 2).
			Return(&approvalflow.ApprovalLevel{ID: uuid.New(), LevelNumber: 2}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.UpdateLevel(ctx, level.ID.String(), approvalflow.UpdateLevelRequest{LevelNumber: 2, RoleID: roleID})

		assert.ErrorIs(t, err, approvalflowerrors.ErrDuplicateLevelNumber)
	})

	t.Run("keeping its own number changes the role", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true
		level := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 1, RoleID: uuid.New()}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().FindByID(ctx, level.ID.String()).Return(level, nil)
		deps.repo.EXPECT().FindByNumber(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().Update(ctx, level).Return(nil)
		deps.repo.EXPECT().ListByAssetType(ctx, typeID.String()).Return([]approvalflow.ApprovalLevel{*level}, nil)
		deps.redismock.ExpectDel("approval_chain:" + typeID.String()).SetVal(0)

		res, err := deps.service.UpdateLevel(ctx, level.ID.String(), approvalflow.UpdateLevelRequest{LevelNumber: 1, RoleID: roleID})

		assert.NoError(t, err)
		assert.Equal(t, roleID, res.RoleID)
		assert.Nil(t, res.NextLevelID)
	})

	t.Run("moving the head to the tail relinks the chain", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true
		l1 := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 1}
		l2 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 2}
		l3 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 3}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().FindByID(ctx, l1.ID.String()).Return(l1, nil)
		deps.repo.EXPECT().FindByNumber(ctx, typeID.String(), 4).Return(nil, nil)
		deps.repo.EXPECT().
			Update(ctx, l1).
			DoAndReturn(func(_ context.Context, l *approvalflow.ApprovalLevel) error {
				assert.Equal(t, 4, l.LevelNumber)
				return nil
			})
		deps.repo.EXPECT().
			ListByAssetType(ctx, typeID.String()).
			DoAndReturn(func(context.Context, string) ([]approvalflow.ApprovalLevel, error) {
				return []approvalflow.ApprovalLevel{l2, l3, *l1}, nil
			})
		deps.redismock.ExpectDel("approval_chain:" + typeID.String()).SetVal(1)

		res, err := deps.service.UpdateLevel(ctx, l1.ID.String(), approvalflow.UpdateLevelRequest{LevelNumber: 4, RoleID: roleID})

		assert.NoError(t, err)
		assert.Equal(t, 4, res.LevelNumber)
		assert.Equal(t, l3.ID.String(), *res.PreviousLevelID)
		assert.Nil(t, res.NextLevelID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())

		chain := approvalflow.LinkChain([]approvalflow.ApprovalLevel{l2, l3, *l1})
		assert.Equal(t, l2.ID, chain[0].ID)
		assert.Nil(t, chain[0].PreviousLevelID)
		assert.Equal(t, l3.ID, *chain[0].NextLevelID)
		assert.Equal(t, l1.ID, *chain[1].NextLevelID)
		assert.Equal(t, l3.ID, *chain[2].PreviousLevelID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.known[roleID] = true
		id := uuid.NewString()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateLevel(ctx, id, approvalflow.UpdateLevelRequest{LevelNumber: 1, RoleID: roleID})

		assert.ErrorIs(t, err, approvalflowerrors.ErrLevelNotFound)
	})
}

func TestApprovalFlowService_DeleteLevel(t *testing.T) {
	ctx := context.Background()
	typeID := uuid.New()

	t.Run("current level of a pending request", func(t *testing.T) {
		deps := setupServiceTest(t)
		level := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 1}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().FindByID(ctx, level.ID.String()).Return(level, nil)
		deps.repo.EXPECT().IsCurrentLevelOfPending(ctx, level.ID.String()).Return(true, nil)
		deps.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		err := deps.service.DeleteLevel(ctx, level.ID.String())

		assert.ErrorIs(t, err, approvalflowerrors.ErrLevelInUse)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		level := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 2}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().FindByID(ctx, level.ID.String()).Return(level, nil)
		deps.repo.EXPECT().IsCurrentLevelOfPending(ctx, level.ID.String()).Return(false, nil)
		deps.repo.EXPECT().Delete(ctx, level.ID.String()).Return(nil)
		deps.redismock.ExpectDel("approval_chain:" + typeID.String()).SetVal(1)

		err := deps.service.DeleteLevel(ctx, level.ID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("referenced by approval history", func(t *testing.T) {
		deps := setupServiceTest(t)
		level := &approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: typeID, LevelNumber: 2}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().FindByID(ctx, level.ID.String()).Return(level, nil)
		deps.repo.EXPECT().IsCurrentLevelOfPending(ctx, level.ID.String()).Return(false, nil)
		deps.repo.EXPECT().
			Delete(ctx, level.ID.String()).
			Return(&pgconn.PgError{Code: "23503", ConstraintName: "approvals_approval_level_id_fkey"})

		err := deps.service.DeleteLevel(ctx, level.ID.String())

		assert.ErrorIs(t, err, approvalflowerrors.ErrLevelHasHistory)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		err := deps.service.DeleteLevel(ctx, "nope")

		assert.ErrorIs(t, err, approvalflowerrors.ErrInvalidLevelID)
	})
}

func TestApprovalFlowService_GetChain(t *testing.T) {
	ctx := context.Background()
	typeID := uuid.NewString()
	key := "approval_chain:" + typeID

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]approvalflow.LevelResponse{{ID: "a", LevelNumber: 1}})

		deps.redismock.ExpectGet(key).SetVal(string(cached))
		deps.repo.EXPECT().ListByAssetType(gomock.Any(), gomock.Any()).Times(0)

		res, err := deps.service.GetChain(ctx, typeID)

		assert.NoError(t, err)
		assert.Equal(t, "a", res[0].ID)
	})

	t.Run("cache miss links levels", func(t *testing.T) {
		deps := setupServiceTest(t)
		tid := uuid.MustParse(typeID)
		l1 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: tid, LevelNumber: 1}
		l2 := approvalflow.ApprovalLevel{ID: uuid.New(), AssetTypeID: tid, LevelNumber: 5}

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().ListByAssetType(ctx, typeID).Return([]approvalflow.ApprovalLevel{l2, l1}, nil)
		deps.redismock.CustomMatch(matchKey).ExpectSet(key, "", 30*time.Minute).SetVal("OK")

		res, err := deps.service.GetChain(ctx, typeID)

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, l1.ID.String(), res[0].ID)
		assert.Equal(t, l2.ID.String(), *res[0].NextLevelID)
		assert.Nil(t, res[1].NextLevelID)
	})
}

// matchKey compares SET commands on everything but the marshalled payload.
func matchKey(expected, actual []interface{}) error {
	if len(expected) != len(actual) || expected[1] != actual[1] {
		return fmt.Errorf("unexpected redis args %v", actual)
	}
	return nil
}
