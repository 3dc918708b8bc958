package branch

import (
	"context"
	"errors"
	"strings"
	"time"

	brancherrors "go-asset/internal/branch/errors"
	"go-asset/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req BranchRequest) (BranchResponse, error)
	GetAll(ctx context.Context, search string) ([]BranchResponse, error)
	GetByID(ctx context.Context, id string) (BranchResponse, error)
	Update(ctx context.Context, id string, req BranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req BranchRequest) (BranchResponse, error) {
	b := &Branch{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("branch created", zap.String("branch_id", b.ID.String()))
	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context, search string) ([]BranchResponse, error) {
	branches, err := s.repo.FindAll(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	res := make([]BranchResponse, len(branches))
	for i, b := range branches {
		res[i] = mapToResponse(b)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req BranchRequest) (BranchResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BranchResponse{}, brancherrors.ErrInvalidBranchID
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}

	b.Name = strings.TrimSpace(req.Name)
	b.Location = strings.TrimSpace(req.Location)

	if err := s.repo.Update(ctx, b); err != nil {
		return BranchResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return brancherrors.ErrInvalidBranchID
	}

	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return brancherrors.ErrBranchInUse
	}

	return mapRepositoryError(s.repo.Delete(ctx, id))
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return brancherrors.ErrBranchNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return brancherrors.ErrBranchNameExists
	}
	return err
}

func mapToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Location:  b.Location,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
