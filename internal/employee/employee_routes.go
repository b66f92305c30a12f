package employee

import (
	"hris-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	guard gin.HandlerFunc,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	employees.Use(guard)
	{
		employees.GET("", h.GetAll)
		employees.POST("/refresh", middleware.RateLimitByUser(2, 5), h.Refresh)
		employees.GET("/departments", h.GetDepartments)

		employees.PUT("/filters", h.SetFilters)
		employees.DELETE("/filters", h.ResetFilters)
		employees.POST("/sort", h.Sort)

		employees.GET("/staged", h.GetStaged)
		employees.PUT("/staged", h.Stage)
		employees.DELETE("/staged", h.Unstage)
		employees.POST("/photo", middleware.RateLimitByUser(0.5, 3), h.UploadPhoto)

		employees.POST("/dispatch",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			h.Dispatch,
		)
	}
}
