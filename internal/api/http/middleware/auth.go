package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthenticatedKey holds the viewer-auth verdict for the request.
const AuthenticatedKey = "authenticated"

// TokenValidator is the "is this caller authenticated" oracle.
type TokenValidator interface {
	IsAuthenticated(token string) bool
}

// OptionalAuth records whether the request carries a valid viewer token. A
// missing or invalid token is not an error; it only degrades names to
// pseudonyms downstream.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticated := false
		if token := bearerToken(c); token != "" {
			authenticated = validator.IsAuthenticated(token)
		}
		c.Set(AuthenticatedKey, authenticated)
		c.Next()
	}
}

// AgentTokenAuth guards the ingestion routes with the shared agent token.
func AgentTokenAuth(agentToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if agentToken == "" {
			slog.Warn("Agent token not configured, rejecting ingestion request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "agent ingestion is not configured",
			})
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(agentToken)) != 1 {
			slog.Warn("Invalid agent token attempt",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}

// IsAuthenticated reads the verdict left by OptionalAuth.
func IsAuthenticated(c *gin.Context) bool {
	value, exists := c.Get(AuthenticatedKey)
	if !exists {
		return false
	}
	authenticated, ok := value.(bool)
	return ok && authenticated
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
