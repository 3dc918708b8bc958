package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-asset/internal/auth"
	autherrors "go-asset/internal/auth/errors"
	authMock "go-asset/internal/auth/mock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false, zap.NewNop())
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("Success Login - Web Client (Cookie Check)", func(t *testing.T) {
		reqBody := auth.LoginRequest{Email: "test@example.com", Password: "password123"}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return("access-token", "refresh-token", auth.AuthResponse{ID: "user-1", Email: "test@example.com"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "web")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 2)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "access-token", cookies[0].Value)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "test@example.com", data["user"].(map[string]interface{})["email"])
		assert.Equal(t, "access-token", data["accessToken"])
	})

	t.Run("API Client gets no cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "test@example.com", Password: "password123"})
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("a", "r", auth.AuthResponse{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Failed Login - Invalid Credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		body, _ := json.Marshal(auth.LoginRequest{Email: "wrong@test.com", Password: "123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_FAILED")
	})
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false, zap.NewNop())
	router := setupAuthRouter()
	router.POST("/register", handler.Register)

	t.Run("Success Register", func(t *testing.T) {
		reqData := auth.RegisterRequest{Email: "new@example.com", FullName: "New User", Password: "newpassword"}
		body, _ := json.Marshal(reqData)

		mockService.EXPECT().
			Register(gomock.Any(), reqData).
			Return(auth.AuthResponse{Email: reqData.Email, FullName: reqData.FullName}, nil)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed Register - Validation Error", func(t *testing.T) {
		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Times(0)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(`{"email": "invalid-email", "fullName": ""}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("Failed Register - Email Already Exists", func(t *testing.T) {
		body, _ := json.Marshal(auth.RegisterRequest{Email: "exists@example.com", FullName: "Existing", Password: "password123"})

		mockService.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered)

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email is already registered")
	})
}

func TestHandler_Logout(t *testing.T) {
	handler := auth.NewHandler(authMock.NewMockService(gomock.NewController(t)), true, zap.NewNop())
	router := setupAuthRouter()
	router.POST("/logout", handler.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.True(t, c.MaxAge < 0)
		assert.True(t, c.Secure)
	}
}
