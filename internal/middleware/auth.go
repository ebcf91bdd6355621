package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-appointment-api/internal/auth"
	"clinic-appointment-api/internal/model"
	"clinic-appointment-api/internal/policy"
)

const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

// Auth validates the bearer token and stashes the caller's identity in the
// request context. There is no ambient current user; handlers read these
// values back out explicitly.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// token from Authorization: Bearer <jwt>
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// Require gates a route on the authorization policy. Tokens are only issued
// to approved accounts, so the caller's approval status is Approved here.
func Require(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if !policy.Permits(role, model.ApprovalApproved, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
