package approvalflow

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	flows := r.Group("/approval-flows")
	{
		flows.GET("", middleware.RBACAuthorize(rbacService, "approval_flows", "read"), h.GetAll)
		flows.GET("/chain/:assetTypeId", middleware.RBACAuthorize(rbacService, "approval_flows", "read"), h.GetChain)
		flows.POST("", middleware.RBACAuthorize(rbacService, "approval_flows", "create"), h.Create)
		flows.PUT("/:id", middleware.RBACAuthorize(rbacService, "approval_flows", "update"), h.Update)
		flows.DELETE("/:id", middleware.RBACAuthorize(rbacService, "approval_flows", "delete"), h.Delete)
	}
}
