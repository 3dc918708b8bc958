package branch

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	branches := r.Group("/branches")
	{
		branches.GET("", middleware.RBACAuthorize(rbacService, "branches", "read"), h.GetAll)
		branches.GET("/:id", middleware.RBACAuthorize(rbacService, "branches", "read"), h.GetById)
		branches.POST("", middleware.RBACAuthorize(rbacService, "branches", "create"), h.Create)
		branches.PUT("/:id", middleware.RBACAuthorize(rbacService, "branches", "update"), h.Update)
		branches.DELETE("/:id", middleware.RBACAuthorize(rbacService, "branches", "delete"), h.Delete)
	}
}
