package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookstore-service/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	UserContextKey  = "userID"
	RoleContextKey  = "role"
	EmailContextKey = "email"
)

// TokenValidator validates access tokens. *services.TokenService implements it.
type TokenValidator interface {
	ValidateToken(tokenStr string) (jwt.MapClaims, error)
}

// AuthMiddleware authenticates the caller from an "Authorization: Bearer"
// access token. With trustGateway set, identity headers injected by an API
// gateway (X-User-ID, X-User-Role, X-User-Email) are accepted as well.
func AuthMiddleware(tokens TokenValidator, trustGateway bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if !strings.HasPrefix(header, "Bearer ") {
				abortUnauthorized(c, "Invalid token format")
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				abortUnauthorized(c, "Invalid or expired token")
				return
			}
			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			email, _ := claims["email"].(string)
			if _, err := uuid.Parse(sub); err != nil {
				abortUnauthorized(c, "Invalid token subject")
				return
			}
			setIdentity(c, sub, role, email)
			c.Next()
			return
		}

		if trustGateway {
			userID := c.GetHeader("X-User-ID")
			if _, err := uuid.Parse(userID); err == nil {
				setIdentity(c, userID, c.GetHeader("X-User-Role"), c.GetHeader("X-User-Email"))
				c.Next()
				return
			}
		}

		abortUnauthorized(c, "Unauthorized")
	}
}

func setIdentity(c *gin.Context, userID, role, email string) {
	c.Set(UserContextKey, userID)
	c.Set(RoleContextKey, role)
	c.Set(EmailContextKey, email)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return uuid.Parse(id)
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}

// AdminOnly restricts access to admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleContextKey)
		if !exists || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
