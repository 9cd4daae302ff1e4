package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/config"
)

// InternalAuth guards the back-office API. All callers are internal feed
// and operations systems, so a shared token plus a private-network check
// is enough.
func InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Internal-Token")
		if token != config.C.Security.InternalToken {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "invalid internal token",
			})
			c.Abort()
			return
		}

		ip := c.ClientIP()
		whitelist := []string{"127.0.0.1", "192.168.", "10.", "::1"}
		allowed := false
		for _, prefix := range whitelist {
			if strings.HasPrefix(ip, prefix) {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"code": 403,
				"msg":  "ip not allowed: " + ip,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
