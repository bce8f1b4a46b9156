package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			h.Generate)
		payrolls.GET("",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			h.GetAll)
		payrolls.GET("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			h.GetByID)
		payrolls.PUT("/:id",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionUpdate),
			h.Update)
		payrolls.POST("/:id/mark-paid",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionUpdate),
			h.MarkPaid)
		payrolls.GET("/:id/payslip",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			h.Payslip)
	}
}
