package app

import (
	"context"
	"net/http"
	"time"

	"hrms-lite/internal/shared/apperror"
	"hrms-lite/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

func registerHealth(router gin.IRoutes, appName string, db pinger) {
	router.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"name": appName, "status": "running"}, nil)
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "healthy", "database": "up"}, nil)
	})
}
