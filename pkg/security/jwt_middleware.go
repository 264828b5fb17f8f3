package security

import (
	"fmt"
	"net/http"
	"strings"

	"assethub/pkg/api"
	"assethub/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware validates the session token and extracts claims. The token
// is read from the HTTP-only cookie set at login, with an Authorization
// bearer header as fallback for non-browser clients.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				api.Error(c, http.StatusUnauthorized, "Authentication required")
				return
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secretKey(), nil
		})

		if err != nil || !token.Valid {
			api.Error(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.Error(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		// Numeric claims come back as float64 after JSON round-trip.
		if userID, ok := claims["userID"].(float64); ok {
			c.Set("userID", int(userID))
		}
		if orgID, ok := claims["organizationID"].(float64); ok {
			c.Set("organizationID", int(orgID))
		}
		c.Set("role", claims["role"])
		c.Set("name", claims["name"])
		c.Next()
	}
}

// Authorize ensures the user has at least the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			api.Error(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			return
		}

		userRole, ok := value.(string)
		if !ok {
			api.Error(c, http.StatusInternalServerError, "Invalid role format")
			return
		}

		if !roles.Role(userRole).IsValid() || !roles.Role(userRole).HasPermission(requiredRole) {
			api.Error(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			return
		}

		c.Next()
	}
}
