package attendance

import (
	"time"

	"hrms-lite/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	g := r.Group("/attendance")
	{
		g.GET("", middleware.RateLimitByIP(5, 20), h.GetAll)
		g.GET("/employee/:employee_id", middleware.RateLimitByIP(5, 20), h.GetByEmployee)
		g.POST("",
			middleware.RateLimitByIP(2, 10),
			middleware.Idempotency(rdb, 24*time.Hour),
			h.Mark,
		)
	}
}
