package scraprequest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-asset/internal/approvalflow"
	"go-asset/internal/domain"
	"go-asset/internal/events"
	"go-asset/internal/messaging/kafka"
	"go-asset/internal/metrics"
	scraprequesterrors "go-asset/internal/scraprequest/errors"
	"go-asset/internal/shared/apperror"
	"go-asset/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=scraprequest_service.go -destination=mock/scraprequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitScrapRequest) (ScrapRequestResponse, error)
	Decide(ctx context.Context, id string, req DecisionRequest) (ScrapRequestResponse, error)
	GetAll(ctx context.Context, filter ScrapRequestFilter) ([]ScrapRequestResponse, int64, error)
	GetByID(ctx context.Context, id string) (ScrapRequestDetailResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("scraprequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scraprequest.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, now: time.Now, logger: l}
}

func (s *service) Submit(ctx context.Context, req SubmitScrapRequest) (ScrapRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(req.AssetID); err != nil {
		return ScrapRequestResponse{}, scraprequesterrors.ErrAssetNotFound
	}
	requesterID, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return ScrapRequestResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit scrap request begin tx failed", zap.Error(err))
		return ScrapRequestResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	asset, err := qtx.FindAsset(ctx, req.AssetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ScrapRequestResponse{}, scraprequesterrors.ErrAssetNotFound
	}
	if err != nil {
		return ScrapRequestResponse{}, err
	}

	outstanding, err := qtx.HasOutstanding(ctx, req.AssetID)
	if err != nil {
		return ScrapRequestResponse{}, err
	}
	if outstanding {
		return ScrapRequestResponse{}, scraprequesterrors.ErrRequestOutstanding
	}

	levels, err := qtx.ListLevels(ctx, asset.AssetTypeID.String())
	if err != nil {
		return ScrapRequestResponse{}, err
	}
	first := approvalflow.Head(levels)
	if first == nil {
		return ScrapRequestResponse{}, scraprequesterrors.ErrNoWorkflow
	}

	now := s.now().UTC()
	sr := &ScrapRequest{
		ID:                     uuid.New(),
		AssetID:                asset.ID,
		Reason:                 strings.TrimSpace(req.Reason),
		Status:                 domain.ScrapPending,
		RequestedByID:          requesterID,
		CurrentApprovalLevelID: &first.ID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := qtx.Create(ctx, sr); err != nil {
		return ScrapRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.ScrapRequested, sr, first.LevelNumber, nil); err != nil {
		return ScrapRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit scrap request commit failed", zap.Error(err))
		return ScrapRequestResponse{}, mapRepositoryError(err)
	}
	metrics.RecordScrapSubmission()

	log.Info("scrap request submitted",
		zap.String("scrap_request_id", sr.ID.String()),
		zap.String("asset_id", req.AssetID),
	)

	sr.AssetName = asset.AssetName
	sr.CurrentLevelNumber = &first.LevelNumber
	return mapToResponse(*sr), nil
}

func (s *service) Decide(ctx context.Context, id string, req DecisionRequest) (ScrapRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return ScrapRequestResponse{}, scraprequesterrors.ErrInvalidScrapRequestID
	}
	if req.Action != domain.ScrapApproved && req.Action != domain.ScrapRejected {
		return ScrapRequestResponse{}, scraprequesterrors.ErrInvalidAction
	}
	approverID, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return ScrapRequestResponse{}, apperror.ErrUnauthorized
	}
	roleID := contextutil.GetRoleID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide scrap request begin tx failed", zap.Error(err))
		return ScrapRequestResponse{}, err
	}
	defer tx.Rollback()
	qtx := s.repo.WithTx(tx)

	sr, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		return ScrapRequestResponse{}, mapRepositoryError(err)
	}
	if sr.Status != domain.ScrapPending || sr.CurrentApprovalLevelID == nil || sr.AssetTypeID == nil {
		return ScrapRequestResponse{}, scraprequesterrors.ErrAlreadyDecided
	}

	levels, err := qtx.ListLevels(ctx, sr.AssetTypeID.String())
	if err != nil {
		return ScrapRequestResponse{}, err
	}
	var current *approvalflow.ApprovalLevel
	for i := range levels {
		if levels[i].ID == *sr.CurrentApprovalLevelID {
			current = &levels[i]
			break
		}
	}
	if current == nil {
		return ScrapRequestResponse{}, scraprequesterrors.ErrNoWorkflow
	}
	if current.RoleID.String() != roleID {
		return ScrapRequestResponse{}, scraprequesterrors.ErrNotApprover.WithDetails(map[string]any{
			"levelNumber":    current.LevelNumber,
			"requiredRoleId": current.RoleID.String(),
		})
	}

	now := s.now().UTC()
	if err := qtx.CreateApproval(ctx, &Approval{
		ID:              uuid.New(),
		ScrapRequestID:  sr.ID,
		ApprovalLevelID: current.ID,
		ApproverID:      approverID,
		Status:          req.Action,
		Comments:        req.Comments,
		CreatedAt:       now,
	}); err != nil {
		log.Error("decide scrap request record approval failed", zap.Error(err))
		return ScrapRequestResponse{}, err
	}

	status, levelID, eventType, outcome := domain.ScrapRejected, current.ID, events.ScrapRejected, "rejected"
	levelNumber := current.LevelNumber
	if req.Action == domain.ScrapApproved {
		if next := approvalflow.Successor(levels, current.ID); next != nil {
			status, levelID, eventType, outcome = domain.ScrapPending, next.ID, events.ScrapAdvanced, "advanced"
			levelNumber = next.LevelNumber
		} else {
			status, eventType, outcome = domain.ScrapApproved, events.ScrapApproved, "approved"
		}
	}

	n, err := qtx.Transition(ctx, id, current.ID, status, levelID)
	if err != nil {
		return ScrapRequestResponse{}, err
	}
	if n == 0 {
		return ScrapRequestResponse{}, scraprequesterrors.ErrConcurrentDecision
	}

	if status == domain.ScrapApproved {
		if err := qtx.MarkAssetScrapped(ctx, sr.AssetID.String(), now); err != nil {
			log.Error("decide scrap request mark asset failed",
				zap.String("asset_id", sr.AssetID.String()),
				zap.Error(err),
			)
			return ScrapRequestResponse{}, err
		}
	}

	sr.Status = status
	sr.CurrentApprovalLevelID = &levelID
	sr.CurrentLevelNumber = &levelNumber
	sr.UpdatedAt = now

	if err := s.enqueue(ctx, tx, eventType, sr, levelNumber, req.Comments); err != nil {
		return ScrapRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide scrap request commit failed", zap.Error(err))
		return ScrapRequestResponse{}, err
	}
	metrics.RecordScrapDecision(outcome)

	log.Info("scrap request decided",
		zap.String("scrap_request_id", id),
		zap.String("outcome", outcome),
		zap.Int("level_number", current.LevelNumber),
	)
	return mapToResponse(*sr), nil
}

func (s *service) GetAll(ctx context.Context, filter ScrapRequestFilter) ([]ScrapRequestResponse, int64, error) {
	switch filter.Status {
	case "", domain.ScrapPending, domain.ScrapApproved, domain.ScrapRejected:
	default:
		return nil, 0, scraprequesterrors.ErrInvalidStatusFilter
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]ScrapRequestResponse, len(rows))
	for i, sr := range rows {
		res[i] = mapToResponse(sr)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ScrapRequestDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ScrapRequestDetailResponse{}, scraprequesterrors.ErrInvalidScrapRequestID
	}

	sr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ScrapRequestDetailResponse{}, mapRepositoryError(err)
	}
	approvals, err := s.repo.ListApprovals(ctx, id)
	if err != nil {
		return ScrapRequestDetailResponse{}, err
	}

	res := ScrapRequestDetailResponse{
		ScrapRequestResponse: mapToResponse(*sr),
		Approvals:            make([]ApprovalResponse, len(approvals)),
	}
	for i, a := range approvals {
		res.Approvals[i] = ApprovalResponse{
			ID:              a.ID.String(),
			ApprovalLevelID: a.ApprovalLevelID.String(),
			LevelNumber:     a.LevelNumber,
			ApproverID:      a.ApproverID.String(),
			ApproverName:    a.ApproverName,
			Status:          a.Status,
			Comments:        a.Comments,
			CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, sr *ScrapRequest, levelNumber int, comments *string) error {
	if s.outbox == nil {
		return nil
	}

	ev := events.ScrapRequestEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		RequestID:      contextutil.GetRequestID(ctx),
		ScrapRequestID: sr.ID.String(),
		AssetID:        sr.AssetID.String(),
		ActorID:        contextutil.GetUserID(ctx),
		LevelNumber:    levelNumber,
		Status:         sr.Status,
		OccurredAt:     s.now().UTC(),
	}
	if comments != nil {
		ev.Comments = *comments
	}

	row, err := kafka.NewOutboxEvent(ev.RequestID, kafka.AggregateScrapRequest, ev.ScrapRequestID, eventType, events.ScrapRequestTopic, ev)
	if err != nil {
		return err
	}
	row.ID = ev.EventID

	if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("scrap request outbox persist failed",
			zap.String("scrap_request_id", ev.ScrapRequestID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scraprequesterrors.ErrScrapRequestNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_scrap_request_outstanding" {
		return scraprequesterrors.ErrRequestOutstanding
	}
	return err
}

func mapToResponse(sr ScrapRequest) ScrapRequestResponse {
	res := ScrapRequestResponse{
		ID:                 sr.ID.String(),
		AssetID:            sr.AssetID.String(),
		AssetName:          sr.AssetName,
		AssetCode:          sr.AssetCode,
		Reason:             sr.Reason,
		Status:             sr.Status,
		RequestedByID:      sr.RequestedByID.String(),
		RequestedByName:    sr.RequestedByName,
		CurrentLevelNumber: sr.CurrentLevelNumber,
		CurrentRoleName:    sr.CurrentRoleName,
		CreatedAt:          sr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          sr.UpdatedAt.Format(time.RFC3339),
	}
	if sr.CurrentApprovalLevelID != nil {
		id := sr.CurrentApprovalLevelID.String()
		res.CurrentApprovalLevelID = &id
	}
	return res
}
