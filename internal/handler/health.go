package handler

import (
	"context"
	"net/http"
	"time"

	"tunik/internal/infra"
	"tunik/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// Redis is optional: without it the status is "disabled" and the check
// still passes.
func Health(db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if mailCB != nil {
			body["smtp_circuit"] = mailCB.State().String()
		}
		if redisStatus == "connected" {
			body["dlq"] = worker.DLQLengths(ctx, rdb)
		}
		c.JSON(status, body)
	}
}
