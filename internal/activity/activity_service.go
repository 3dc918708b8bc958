package activity

import (
	"context"
	"time"

	activityerrors "go-asset/internal/activity/errors"
	"go-asset/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, in RecordInput) error
	GetAll(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, in RecordInput) error {
	if !isKnownAction(in.Action) {
		return activityerrors.ErrUnknownAction
	}
	eventID, err := uuid.Parse(in.EventID)
	if err != nil {
		eventID = uuid.New()
	}

	a := &Activity{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    optionalUUID(in.UserID),
		AssetID:   optionalUUID(in.AssetID),
		Action:    in.Action,
		CreatedAt: in.OccurredAt,
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if in.Details != "" {
		a.Details = &in.Details
	}

	inserted, err := s.repo.Record(ctx, a)
	if err != nil {
		return err
	}
	if !inserted {
		s.logger.Debug("activity already recorded", zap.String("event_id", in.EventID))
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, int64, error) {
	if filter.AssetID != "" {
		if _, err := uuid.Parse(filter.AssetID); err != nil {
			return nil, 0, activityerrors.ErrInvalidAssetFilter
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ActivityResponse, len(rows))
	for i, a := range rows {
		res[i] = ActivityResponse{
			ID:        a.ID.String(),
			Action:    a.Action,
			UserID:    uuidString(a.UserID),
			UserName:  a.UserName,
			AssetID:   uuidString(a.AssetID),
			AssetName: a.AssetName,
			Details:   a.Details,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
	}
	return res, total, nil
}

func isKnownAction(action string) bool {
	switch action {
	case domain.ActivityAssetCreated, domain.ActivityAssetUpdated, domain.ActivityAssetDeleted,
		domain.ActivityScrapRequested, domain.ActivityScrapAdvanced,
		domain.ActivityScrapApproved, domain.ActivityScrapRejected:
		return true
	}
	return false
}

func optionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
