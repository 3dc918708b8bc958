package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-asset/internal/auth/errors"
	"go-asset/internal/config"
	"go-asset/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultRoleName is the role given to self-registered users.
const DefaultRoleName = "USER"

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)

	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo   Repository
	rbac   rbac.Service
	jwt    config.JWTConfig
	logger *zap.Logger
}

func NewService(repo Repository, rbacService rbac.Service, jwtCfg config.JWTConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if jwtCfg.ExpiresIn <= 0 {
		jwtCfg.ExpiresIn = 24 * time.Hour
	}
	if jwtCfg.RefreshExpiresIn <= 0 {
		jwtCfg.RefreshExpiresIn = 7 * 24 * time.Hour
	}
	return &service{repo: repo, rbac: rbacService, jwt: jwtCfg, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	// surfaces a broken role setup at login time
	if err := s.rbac.LoadUserPolicy(ctx, user.ID.String()); err != nil {
		s.logger.Error("load user policy failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return "", "", AuthResponse{}, err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return accessToken, refreshToken, toAuthResponse(user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	newAccess, newRefresh, err := s.issueTokens(user)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return newAccess, newRefresh, toAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	res := toAuthResponse(u)
	return &res, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	roleID, err := s.repo.GetRoleIDByName(ctx, DefaultRoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrDefaultRoleMissing
		}
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: string(hashed),
		RoleID:   roleID,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register user failed", zap.String("email", email), zap.Error(err))
		return AuthResponse{}, err
	}
	user.RoleName = DefaultRoleName

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return toAuthResponse(user), nil
}

func (s *service) issueTokens(user *User) (string, string, error) {
	access, err := s.generateToken(user, "access", s.jwt.ExpiresIn)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, "refresh", s.jwt.RefreshExpiresIn)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

func (s *service) generateToken(user *User, typ string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role_id": user.RoleID.String(),
		"typ":     typ,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwt.Secret))
}

func toAuthResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		RoleID:   u.RoleID.String(),
		Role:     u.RoleName,
	}
}
