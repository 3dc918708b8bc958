package activity

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/activities", middleware.RBACAuthorize(rbacService, "activities", "read"), h.GetAll)
}
