package middleware

import (
	"net/http"
	"strings"

	"smartslot/internal/shared/config"
	"smartslot/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookie is the cookie carrying the portal session token.
const SessionCookie = "smartslot_session"

// SessionAuth creates a portal session authentication middleware
func SessionAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Fail(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		claims, err := parseSessionToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set("session_id", claims["sid"])
		c.Set("user_id", claims["user_id"])
		c.Set("user_email", claims["email"])
		c.Set("user_role", claims["role"])

		c.Next()
	}
}

// OptionalAuth validates the session token if present but doesn't require it
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := parseSessionToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			c.Next()
			return
		}

		c.Set("session_id", claims["sid"])
		c.Set("user_id", claims["user_id"])
		c.Set("user_email", claims["email"])
		c.Set("user_role", claims["role"])

		c.Next()
	}
}

// RequireRoles checks if the signed-in user has any of the required roles.
// This gates navigation only; the upstream API is the security boundary.
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			response.Fail(c, http.StatusUnauthorized, "User role not found in session")
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range requiredRoles {
			if userRole.(string) == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			response.Fail(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractToken pulls the session token from the Authorization header or the
// session cookie, header first.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// parseSessionToken validates a portal session JWT and returns its claims
func parseSessionToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenNotValidYet
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "session" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
