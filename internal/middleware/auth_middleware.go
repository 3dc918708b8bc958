package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "go-asset/internal/auth/errors"
	"go-asset/internal/shared/apperror"
	"go-asset/internal/shared/contextutil"
	"go-asset/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type accessClaims struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func bearerToken(c *gin.Context) string {
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func abortWith(c *gin.Context, err *apperror.AppError, message string) {
	if message == "" {
		message = err.Message
	}
	response.Error(c, err.HTTPStatus, err.Code, message, nil)
	c.Abort()
}

// AuthMiddleware accepts HS256 access tokens from the Authorization header or the access_token cookie.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		var claims accessClaims
		_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, autherrors.ErrTokenExpired, "")
				return
			}
			abortWith(c, autherrors.ErrInvalidToken, "")
			return
		}

		switch {
		case claims.Type == "refresh":
			abortWith(c, autherrors.ErrInvalidToken, "Refresh token cannot be used for API access")
			return
		case claims.UserID == "":
			abortWith(c, autherrors.ErrInvalidToken, "User ID not found in token")
			return
		case claims.RoleID == "":
			abortWith(c, autherrors.ErrInvalidToken, "Role ID not found in token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role_id", claims.RoleID)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, claims.UserID)
		ctx = contextutil.WithRoleID(ctx, claims.RoleID)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.UserID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
