package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"smartslot/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware enforces the per-route rate limits
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis trouble should not take the portal down with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.Fail(c, http.StatusTooManyRequests, "Rate limit exceeded. Please slow down.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType buckets a route into a limit type
func getRateLimitType(path string) RateLimitType {
	switch {
	// Sign-in and registration: the strictest budget
	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAuth

	// Booking workflow, bookings list, staff review queue
	case strings.Contains(path, "/bookings"),
		strings.Contains(path, "/staff/"):
		return RateLimitTypeBooking

	// Assistant widget
	case strings.Contains(path, "/chatbot"):
		return RateLimitTypeChat

	// Public browsing: venue catalog and calendar
	case strings.Contains(path, "/venues"),
		strings.Contains(path, "/calendar"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts the real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return ip
}
