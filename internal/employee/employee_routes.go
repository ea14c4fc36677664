package employee

import (
	"go-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")

	employees.Use(middleware.AuthMiddleware())

	{
		employees.GET("", h.List)
		employees.GET("/create", h.CreateForm)
		employees.POST("", middleware.RateLimitByUser(1, 5), h.Create)
		employees.GET("/:id/edit", h.Edit)
		employees.PUT("/:id", middleware.RateLimitByUser(1, 5), h.Update)
		employees.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), h.Delete)
	}
}
