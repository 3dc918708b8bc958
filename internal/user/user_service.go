package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-asset/internal/shared/contextutil"
	usererrors "go-asset/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	GetAll(ctx context.Context, filter UserFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	AssignRole(ctx context.Context, userID, roleID string) error
	ToggleStatus(ctx context.Context, actorID, id string, isActive bool) error

	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, userID, newPassword string) error
}

// RoleChecker is the slice of rbac.Service the user module needs.
type RoleChecker interface {
	RoleExists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo  Repository
	roles RoleChecker
}

func NewService(repo Repository, roles RoleChecker) Service {
	return &service{
		repo:  repo,
		roles: roles,
	}
}

func (s *service) GetAll(ctx context.Context, filter UserFilter) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	roleID, err := s.checkRole(ctx, req.RoleID)
	if err != nil {
		return UserResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashedPassword),
		RoleID:       roleID,
		DepartmentID: parseOptionalUUID(req.DepartmentID),
		BranchID:     parseOptionalUUID(req.BranchID),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	u.FullName = strings.TrimSpace(req.FullName)
	u.DepartmentID = parseOptionalUUID(req.DepartmentID)
	u.BranchID = parseOptionalUUID(req.BranchID)

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

// AssignRole takes effect on the next authorization check; policies are loaded per request.
func (s *service) AssignRole(ctx context.Context, userID, roleID string) error {
	rid, err := s.checkRole(ctx, roleID)
	if err != nil {
		return err
	}

	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	u.RoleID = rid
	return mapRepositoryError(s.repo.Update(ctx, u))
}

func (s *service) ToggleStatus(ctx context.Context, actorID, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, nil)

	if !isActive && actorID == id {
		return usererrors.ErrCannotDeactivateSelf
	}

	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.Error(err))
		return err
	}

	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}

	return s.setPassword(ctx, u, newPassword)
}

func (s *service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	return s.setPassword(ctx, u, newPassword)
}

func (s *service) setPassword(ctx context.Context, u *User, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		contextutil.GetLogger(ctx, nil).Error("failed to hash new password", zap.Error(err))
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) find(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func (s *service) checkRole(ctx context.Context, roleID string) (uuid.UUID, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return uuid.Nil, usererrors.ErrRoleNotFound
	}
	ok, err := s.roles.RoleExists(ctx, roleID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, usererrors.ErrRoleNotFound
	}
	return rid, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return usererrors.ErrUserAlreadyExists
		case "23503":
			return usererrors.ErrInvalidReference
		}
	}
	return err
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

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		FullName:       u.FullName,
		Email:          u.Email,
		RoleID:         u.RoleID.String(),
		Role:           u.RoleName,
		DepartmentID:   uuidPtrString(u.DepartmentID),
		DepartmentName: u.DepartmentName,
		BranchID:       uuidPtrString(u.BranchID),
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}
