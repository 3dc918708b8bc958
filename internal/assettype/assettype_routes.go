package assettype

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	types := r.Group("/asset-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "asset_types", "read"), h.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "asset_types", "read"), h.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "asset_types", "create"), h.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "asset_types", "update"), h.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "asset_types", "delete"), h.Delete)
	}
}
