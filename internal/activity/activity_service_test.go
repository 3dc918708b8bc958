package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-asset/internal/activity"
	activityerrors "go-asset/internal/activity/errors"
	activityMock "go-asset/internal/activity/mock"
	"go-asset/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestActivityService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the event onto a row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo)

		eventID := uuid.NewString()
		assetID := uuid.NewString()
		at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

		repo.EXPECT().
			Record(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *activity.Activity) (bool, error) {
				assert.Equal(t, eventID, a.EventID.String())
				assert.Equal(t, assetID, a.AssetID.String())
				assert.Nil(t, a.UserID)
				assert.Equal(t, domain.ActivityScrapApproved, a.Action)
				assert.Equal(t, "Final approval", *a.Details)
				assert.Equal(t, at, a.CreatedAt)
				return true, nil
			})

		err := svc.Record(ctx, activity.RecordInput{
			EventID:    eventID,
			Action:     domain.ActivityScrapApproved,
			AssetID:    assetID,
			Details:    "Final approval",
			OccurredAt: at,
		})

		assert.NoError(t, err)
	})

	t.Run("replayed event is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo)

		repo.EXPECT().Record(ctx, gomock.Any()).Return(false, nil)

		err := svc.Record(ctx, activity.RecordInput{EventID: uuid.NewString(), Action: domain.ActivityAssetCreated})

		assert.NoError(t, err)
	})

	t.Run("unknown action", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo)

		repo.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

		err := svc.Record(ctx, activity.RecordInput{EventID: uuid.NewString(), Action: "PAYROLL_RUN"})

		assert.ErrorIs(t, err, activityerrors.ErrUnknownAction)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo)

		repo.EXPECT().Record(ctx, gomock.Any()).Return(false, errors.New("db down"))

		err := svc.Record(ctx, activity.RecordInput{EventID: uuid.NewString(), Action: domain.ActivityAssetDeleted})

		assert.EqualError(t, err, "db down")
	})
}

func TestActivityService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults paging", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo)

		assetID := uuid.New()
		repo.EXPECT().
			FindAll(ctx, activity.ActivityFilter{Page: 1, Limit: 20}).
			Return([]activity.Activity{{ID: uuid.New(), Action: domain.ActivityAssetCreated, AssetID: &assetID}}, int64(1), nil)

		res, total, err := svc.GetAll(ctx, activity.ActivityFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, assetID.String(), *res[0].AssetID)
	})

	t.Run("bad asset filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := activity.NewService(activityMock.NewMockRepository(ctrl))

		_, _, err := svc.GetAll(ctx, activity.ActivityFilter{AssetID: "x"})

		assert.ErrorIs(t, err, activityerrors.ErrInvalidAssetFilter)
	})
}
