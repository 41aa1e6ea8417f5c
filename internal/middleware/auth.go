package middleware

import (
	"net/http"
	"os"
	"strings"

	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserId is the gin context key holding the authenticated user's id.
const ContextUserId = "userId"

// RoleChecker answers whether a user holds a role. Satisfied by
// services.HelperService.
type RoleChecker interface {
	HasRole(userId, role string) bool
}

// Authenticate validates the Bearer token and stashes the subject claim on
// the context. Tokens are HS256 signed with JWT_SECRET.
func Authenticate() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Missing authorization header", nil, http.StatusUnauthorized))
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Invalid or expired token", nil, http.StatusUnauthorized))
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("Invalid token subject", nil, http.StatusUnauthorized))
			return
		}

		c.Set(ContextUserId, subject)
		c.Next()
	}
}

// RequireAdmin gates a route group to users holding the admin role. Must run
// after Authenticate.
func RequireAdmin(roles RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetString(ContextUserId)
		if userId == "" || !roles.HasRole(userId, "admin") {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("Admin access required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}
