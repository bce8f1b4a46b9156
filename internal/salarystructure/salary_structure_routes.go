package salarystructure

import (
	"github.com/gin-gonic/gin"

	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.PUT("",
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalaryStructure, rbac.ActionUpdate),
			h.Upsert)
		structures.GET("/:employeeId",
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalaryStructure, rbac.ActionRead),
			h.GetByEmployee)
		structures.POST("/resolve",
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalaryStructure, rbac.ActionRead),
			h.Resolve)
	}
}
