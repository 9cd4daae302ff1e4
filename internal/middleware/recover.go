package middleware

import (
	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/logger"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Settlement.Errorf("[PANIC] %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.JSON(500, gin.H{"code": 500, "msg": "internal error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}
