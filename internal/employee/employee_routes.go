package employee

import (
	"time"

	"hrms-lite/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByIP(5, 20),
			handler.GetAll,
		)

		employees.GET("/:employee_id",
			middleware.RateLimitByIP(5, 20),
			handler.GetByEmployeeID,
		)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			middleware.Idempotency(rdb, 24*time.Hour),
			handler.Create,
		)

		employees.DELETE("/:employee_id",
			middleware.RateLimitByIP(0.5, 3),
			handler.Delete,
		)
	}
}
