package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-asset/internal/user"
	usererrors "go-asset/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	GetAllFn         func(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error)
	GetByIDFn        func(ctx context.Context, id string) (user.UserResponse, error)
	CreateFn         func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	UpdateFn         func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	AssignRoleFn     func(ctx context.Context, userID, roleID string) error
	ToggleStatusFn   func(ctx context.Context, actorID, id string, isActive bool) error
	ChangePasswordFn func(ctx context.Context, id, current, new string) error
	ResetPasswordFn  func(ctx context.Context, id, new string) error
}

func (f *fakeUserService) GetAll(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeUserService) AssignRole(ctx context.Context, userID, roleID string) error {
	return f.AssignRoleFn(ctx, userID, roleID)
}
func (f *fakeUserService) ToggleStatus(ctx context.Context, actorID, id string, isActive bool) error {
	return f.ToggleStatusFn(ctx, actorID, id, isActive)
}
func (f *fakeUserService) ChangePassword(ctx context.Context, id, current, new string) error {
	return f.ChangePasswordFn(ctx, id, current, new)
}
func (f *fakeUserService) ResetPassword(ctx context.Context, id, new string) error {
	return f.ResetPasswordFn(ctx, id, new)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func TestUserHandler_GetAll(t *testing.T) {
	svc := &fakeUserService{
		GetAllFn: func(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
			assert.Equal(t, "jo", filter.Search)
			if assert.NotNil(t, filter.IsActive) {
				assert.True(t, *filter.IsActive)
			}
			return []user.UserResponse{
				{ID: "1", FullName: "Zed", Email: "z@mail.com"},
				{ID: "2", FullName: "Amy", Email: "a@mail.com"},
				{ID: "3", FullName: "Bob", Email: "b@mail.com"},
			}, nil
		},
	}

	h := user.NewHandler(svc)
	c, w := newContext(http.MethodGet, "/users?search=jo&isActive=true&sortBy=fullName&sortDir=desc&limit=2", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []user.UserResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, "Zed", body.Data[0].FullName)
	assert.Equal(t, "Bob", body.Data[1].FullName)
	assert.Equal(t, 3, body.Meta.Total)
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			CreateFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{ID: uuid.NewString(), Email: req.Email}, nil
			},
		}
		h := user.NewHandler(svc)
		body := `{"fullName":"Jane","email":"jane@mail.com","password":"password123","roleId":"` + uuid.NewString() + `"}`
		c, w := newContext(http.MethodPost, "/users", body)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		body := `{"fullName":"Jane","email":"jane@mail.com","password":"x","roleId":"` + uuid.NewString() + `"}`
		c, w := newContext(http.MethodPost, "/users", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("email exists", func(t *testing.T) {
		svc := &fakeUserService{
			CreateFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUserAlreadyExists
			},
		}
		h := user.NewHandler(svc)
		body := `{"fullName":"Jane","email":"jane@mail.com","password":"password123","roleId":"` + uuid.NewString() + `"}`
		c, w := newContext(http.MethodPost, "/users", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestUserHandler_ToggleStatus(t *testing.T) {
	t.Run("passes actor", func(t *testing.T) {
		svc := &fakeUserService{
			ToggleStatusFn: func(ctx context.Context, actorID, id string, isActive bool) error {
				assert.Equal(t, "actor-1", actorID)
				assert.Equal(t, "target-1", id)
				assert.False(t, isActive)
				return nil
			},
		}
		h := user.NewHandler(svc)
		c, w := newContext(http.MethodPatch, "/users/target-1/status", `{"isActive":false}`)
		c.Params = gin.Params{{Key: "id", Value: "target-1"}}
		c.Set("user_id", "actor-1")

		h.ToggleStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing flag", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		c, w := newContext(http.MethodPatch, "/users/x/status", `{}`)

		h.ToggleStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	svc := &fakeUserService{
		ChangePasswordFn: func(ctx context.Context, id, current, new string) error {
			assert.Equal(t, "me", id)
			return usererrors.ErrWrongPassword
		},
	}
	h := user.NewHandler(svc)
	c, w := newContext(http.MethodPut, "/me/password", `{"currentPassword":"a","newPassword":"password123"}`)
	c.Set("user_id", "me")

	h.ChangePassword(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
