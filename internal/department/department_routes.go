package department

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "departments", "read"), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, "departments", "create"), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "departments", "read"), h.GetById)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "departments", "update"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "departments", "delete"), h.Delete)
	}
}
