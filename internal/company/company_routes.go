package company

import (
	"go-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	companies := r.Group("/companies")

	companies.Use(middleware.AuthMiddleware())

	{
		companies.GET("", h.List)
		companies.GET("/create", h.CreateForm)
		companies.GET("/options", h.Options)
		companies.POST("", middleware.RateLimitByUser(1, 5), h.Create)
		companies.GET("/:id/edit", h.Edit)
		companies.PUT("/:id", middleware.RateLimitByUser(1, 5), h.Update)
		companies.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), h.Delete)
	}
}
