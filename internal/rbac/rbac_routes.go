package rbac

import (
	"go-asset/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)

		group.GET("/roles", middleware.RBACAuthorize(service, "roles", "read"), handler.ListRoles)
		group.GET("/roles/:id", middleware.RBACAuthorize(service, "roles", "read"), handler.GetRole)
		group.POST("/roles", middleware.RBACAuthorize(service, "roles", "create"), handler.CreateRole)
		group.PUT("/roles/:id", middleware.RBACAuthorize(service, "roles", "update"), handler.UpdateRole)
		group.DELETE("/roles/:id", middleware.RBACAuthorize(service, "roles", "delete"), handler.DeleteRole)
	}
}
