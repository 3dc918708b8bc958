package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-asset/internal/auth"
	autherrors "go-asset/internal/auth/errors"
	authMock "go-asset/internal/auth/mock"
	"go-asset/internal/config"
	rbacMock "go-asset/internal/rbac/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newService(t *testing.T) (auth.Service, *authMock.MockRepository, *rbacMock.MockService) {
	ctrl := gomock.NewController(t)
	mockRepo := authMock.NewMockRepository(ctrl)
	mockRBAC := rbacMock.NewMockService(ctrl)
	svc := auth.NewService(mockRepo, mockRBAC, config.JWTConfig{Secret: testSecret, ExpiresIn: time.Hour}, zap.NewNop())
	return svc, mockRepo, mockRBAC
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	userID := uuid.New()
	roleID := uuid.New()
	mockUser := &auth.User{
		ID:       userID,
		FullName: "Asset Admin",
		Email:    "admin@example.com",
		Password: string(pw),
		RoleID:   roleID,
		RoleName: "ADMIN",
		IsActive: true,
	}

	t.Run("Success Login", func(t *testing.T) {
		service, mockRepo, mockRBAC := newService(t)

		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)
		mockRBAC.EXPECT().LoadUserPolicy(ctx, userID.String()).Return(nil)

		token, refreshToken, resp, err := service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.Equal(t, roleID.String(), resp.RoleID)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, roleID.String(), claims["role_id"])
		assert.Equal(t, "access", claims["typ"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)

		_, _, _, err := service.Login(ctx, mockUser.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := service.Login(ctx, "ghost@example.com", password)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Inactive User", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		inactive := *mockUser
		inactive.IsActive = false
		mockRepo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(&inactive, nil)

		_, _, _, err := service.Login(ctx, mockUser.Email, password)
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	pw, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &auth.User{ID: uuid.New(), RoleID: uuid.New(), Email: "a@b.co", Password: string(pw), IsActive: true}

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		service, mockRepo, mockRBAC := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)
		mockRBAC.EXPECT().LoadUserPolicy(ctx, user.ID.String()).Return(nil)

		access, refresh, _, err := service.Login(ctx, user.Email, "password123")
		assert.NoError(t, err)

		_, _, _, err = service.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)

		mockRepo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)
		newAccess, _, resp, err := service.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		service, _, _ := newService(t)
		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	req := auth.RegisterRequest{
		FullName: "John Doe",
		Email:    "User@Example.com",
		Password: "password123",
	}

	t.Run("Success Register", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		roleID := uuid.New()

		mockRepo.EXPECT().GetByEmail(ctx, "user@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().GetRoleIDByName(ctx, auth.DefaultRoleName).Return(roleID, nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, u *auth.User) error {
				assert.Equal(t, "user@example.com", u.Email)
				assert.Equal(t, roleID, u.RoleID)
				assert.NotEqual(t, req.Password, u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)))
				return nil
			})

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "user@example.com", resp.Email)
		assert.Equal(t, auth.DefaultRoleName, resp.Role)
	})

	t.Run("Email Already Registered", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, "user@example.com").Return(&auth.User{}, nil)

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("Duplicate Email Race", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().GetRoleIDByName(ctx, auth.DefaultRoleName).Return(uuid.New(), nil)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"})

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("Default Role Missing", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().GetRoleIDByName(ctx, auth.DefaultRoleName).Return(uuid.Nil, gorm.ErrRecordNotFound)

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrDefaultRoleMissing)
	})

	t.Run("Lookup Failure", func(t *testing.T) {
		service, mockRepo, _ := newService(t)
		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, errors.New("conn refused"))

		_, err := service.Register(ctx, req)
		assert.EqualError(t, err, "conn refused")
	})
}
