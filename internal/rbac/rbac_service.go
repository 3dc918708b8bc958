package rbac

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-asset/internal/domain"
	rbacerrors "go-asset/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadUserPolicy(ctx context.Context, userID string) error
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(ctx context.Context) ([]domain.RoleResponse, error)
	GetRole(ctx context.Context, id string) (domain.RoleResponse, error)
	CreateRole(ctx context.Context, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
	RoleExists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadUserPolicy(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadUserPolicyUnlocked(ctx, userID)
}

// The enforcer only ever holds the policy of the user being checked.
func (s *service) loadUserPolicyUnlocked(ctx context.Context, userID string) error {
	s.enforcer.ClearPolicy()
	if err := s.enforcer.GetRoleManager().Clear(); err != nil {
		return err
	}

	roleID, err := s.repo.GetUserRoleID(ctx, userID)
	if err != nil {
		return err
	}
	if roleID == "" {
		return nil
	}

	if _, err := s.enforcer.AddGroupingPolicy(userID, roleID); err != nil {
		return err
	}

	perms, err := s.repo.GetRolePermissions(ctx, roleID)
	if err != nil {
		return err
	}
	for _, p := range perms {
		if _, err := s.enforcer.AddPolicy(roleID, p.Resource, p.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("user_id", userID),
		zap.String("role_id", roleID),
		zap.Int("permissions", len(perms)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadUserPolicyUnlocked(context.Background(), req.UserID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context) ([]domain.RoleResponse, error) {
	rows, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RoleResponse, 0, len(rows))
	for _, r := range rows {
		perms, err := s.repo.GetRolePermissions(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		res = append(res, toRoleResponse(r, perms))
	}
	return res, nil
}

func (s *service) GetRole(ctx context.Context, id string) (domain.RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RoleResponse{}, rbacerrors.ErrInvalidRoleID
	}

	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	perms, err := s.repo.GetRolePermissions(ctx, id)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return toRoleResponse(*role, perms), nil
}

func (s *service) CreateRole(ctx context.Context, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Name))

	if existing, err := s.repo.GetRoleByName(ctx, name); err == nil && existing != nil {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	role := &RoleRow{ID: uuid.NewString(), Name: name, Description: req.Description}
	perms := toPermissionRows(role.ID, req.Permissions)
	if err := s.repo.CreateRole(ctx, role, perms); err != nil {
		s.logger.Error("create role failed", zap.String("name", name), zap.Error(err))
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	return toRoleResponse(*role, perms), nil
}

func (s *service) UpdateRole(ctx context.Context, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RoleResponse{}, rbacerrors.ErrInvalidRoleID
	}

	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}

	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if other, err := s.repo.GetRoleByName(ctx, name); err == nil && other != nil && other.ID != id {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
	}

	role.Name = name
	role.Description = req.Description
	perms := toPermissionRows(id, req.Permissions)
	if err := s.repo.UpdateRole(ctx, role, perms); err != nil {
		s.logger.Error("update role failed", zap.String("role_id", id), zap.Error(err))
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	return toRoleResponse(*role, perms), nil
}

func (s *service) DeleteRole(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return rbacerrors.ErrInvalidRoleID
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) RoleExists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	_, err := s.repo.GetRoleByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rbacerrors.ErrRoleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_role_name":
			return rbacerrors.ErrRoleNameExists
		case pgErr.Code == "23503":
			return rbacerrors.ErrRoleInUse
		}
	}
	return err
}

func toPermissionRows(roleID string, items []domain.PermissionItem) []RolePermissionRow {
	rows := make([]RolePermissionRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, RolePermissionRow{
			RoleID:   roleID,
			Resource: strings.TrimSpace(p.Resource),
			Action:   strings.TrimSpace(p.Action),
		})
	}
	return rows
}

func toRoleResponse(r RoleRow, perms []RolePermissionRow) domain.RoleResponse {
	items := make([]domain.PermissionItem, 0, len(perms))
	for _, p := range perms {
		items = append(items, domain.PermissionItem{Resource: p.Resource, Action: p.Action})
	}
	return domain.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: items,
	}
}
