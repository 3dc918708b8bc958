package user

import (
	"go-asset/internal/middleware"
	"go-asset/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	r.PUT("/me/password",
		middleware.RateLimitByUser(0.2, 2),
		handler.ChangePassword,
	)

	users := r.Group("/users")
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "users", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "users", "read"),
			handler.GetById,
		)

		users.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "users", "create"),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "users", "update"),
			handler.Update,
		)

		users.PUT("/:id/role",
			middleware.RBACAuthorize(rbacService, "users", "update"),
			handler.AssignRole,
		)

		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "users", "update"),
			handler.ToggleStatus,
		)

		users.POST("/:id/reset-password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "users", "update"),
			handler.ResetPassword,
		)
	}
}
