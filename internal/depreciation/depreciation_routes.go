package depreciation

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes expects r to be behind AuthMiddleware already.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	assets := r.Group("/assets")
	{
		assets.GET("/:id/depreciation", middleware.RBACAuthorize(rbacService, "assets", "read"), h.History)
		assets.POST("/:id/depreciation", middleware.RBACAuthorize(rbacService, "depreciation", "run"), h.Calculate)
		assets.POST("/update-depreciation",
			middleware.RateLimitByUser(rate.Limit(0.1), 1),
			middleware.RBACAuthorize(rbacService, "depreciation", "run"),
			h.RunBatch,
		)
	}
}

// RegisterCronRoutes mounts the scheduler hook; it authenticates with a shared secret, not a JWT.
func RegisterCronRoutes(r *gin.RouterGroup, h *Handler, cronSecret string) {
	r.POST("/cron/depreciation", middleware.CronSecret(cronSecret), h.RunBatch)
}
