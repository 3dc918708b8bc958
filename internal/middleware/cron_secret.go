package middleware

import (
	"crypto/subtle"

	depreciationerrors "go-asset/internal/depreciation/errors"
	"go-asset/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const CronSecretHeader = "X-Cron-Secret"

// CronSecret guards endpoints hit by an external scheduler. An empty secret rejects every call.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(CronSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			e := depreciationerrors.ErrInvalidCronSecret
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
