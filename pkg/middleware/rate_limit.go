package middleware

import (
	"fmt"
	"net/http"

	"streamcatalog/internal/service"
	"streamcatalog/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware creates a middleware for rate limiting
func RateLimitMiddleware(rateLimitService *service.RateLimitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rateLimitService.IsAllowed(ip) {
			logger.Logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please try again later.",
				"code":    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		if remaining := rateLimitService.GetRemaining(ip); remaining >= 0 {
			c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		}

		c.Next()
	}
}

// QuotaCheckMiddleware annotates download requests with the caller's quota
// state so the handler can gate on it and clients can show remaining budget
func QuotaCheckMiddleware(quotaService *service.QuotaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/api/download" && c.Request.Method == "POST" {
			ip := c.ClientIP()
			info := quotaService.GetQuotaInfo(ip)
			c.Set("quota_info", info)
			if remaining, ok := info["remaining_mb"].(int64); ok {
				c.Header("X-Quota-Remaining-MB", fmt.Sprintf("%d", remaining))
			}
		}
		c.Next()
	}
}
