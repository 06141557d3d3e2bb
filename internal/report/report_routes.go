package report

import (
	"hrms-lite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/attendance/summary", middleware.RateLimitByIP(5, 20), h.Summary)
	r.GET("/dashboard/stats", middleware.RateLimitByIP(5, 20), h.Dashboard)
}
