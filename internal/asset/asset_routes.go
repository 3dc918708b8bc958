package asset

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	assets := r.Group("/assets")
	{
		assets.GET("", middleware.RBACAuthorize(rbacService, "assets", "read"), h.GetAll)
		assets.GET("/:id", middleware.RBACAuthorize(rbacService, "assets", "read"), h.GetById)
		assets.POST("",
			middleware.RBACAuthorize(rbacService, "assets", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		assets.PUT("/:id", middleware.RBACAuthorize(rbacService, "assets", "update"), h.Update)
		assets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "assets", "delete"), h.Delete)
	}
}
