package scraprequest

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	requests := r.Group("/scrap-requests")
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "scrap_requests", "read"), h.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "scrap_requests", "read"), h.GetById)
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "scrap_requests", "create"),
			middleware.Idempotency(rdb),
			h.Submit,
		)
		requests.PUT("/:id", middleware.RBACAuthorize(rbacService, "scrap_requests", "approve"), h.Decide)
	}
}
