package department

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
	departments := r.Group("/departments")
	departments.Use(guard)
	{
		departments.GET("", h.GetAll)
		departments.POST("/refresh", middleware.RateLimitByUser(2, 5), h.Refresh)

		departments.PUT("/filters", h.SetFilters)
		departments.DELETE("/filters", h.ResetFilters)
		departments.POST("/sort", h.Sort)

		departments.GET("/staged", h.GetStaged)
		departments.PUT("/staged", h.Stage)
		departments.DELETE("/staged", h.Unstage)

		departments.POST("/dispatch",
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb),
			h.Dispatch,
		)
	}
}
