package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func StatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbOK := false
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			if sqlDB, err := db.DB(); err == nil {
				dbOK = sqlDB.PingContext(ctx) == nil
			}
			cancel()
		}
		respondOK(c, gin.H{
			"db":   dbOK,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
