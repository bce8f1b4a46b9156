package attendance

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			middleware.RateLimitByEmployee(rate.Limit(1), 5),
			h.CheckIn)
		attendances.POST("/check-out",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			middleware.RateLimitByEmployee(rate.Limit(1), 5),
			h.CheckOut)
		attendances.GET("/summary",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.GetSummary)

		attendances.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
			h.CreateManual)
		attendances.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
			h.UpdateManual)
		attendances.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionDelete),
			h.Delete)
	}
}
