package middleware

import (
	"strings"

	"forum-api/config"
	"forum-api/helper"
	"forum-api/models"
	"forum-api/repositories"
	"forum-api/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const currentUserKey = "current_user"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and loads the user row fresh so
// role and ban state reflect the latest persisted values, not the token's.
// An elapsed timed ban is cleared here, before any guard sees it.
func AuthMiddleware(users repositories.UserRepository, moderation services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			helper.AbortUnauthenticated(c, "authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			helper.AbortUnauthenticated(c, "bearer token required")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			helper.AbortUnauthenticated(c, "invalid token")
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			helper.AbortUnauthenticated(c, "unknown user")
			return
		}

		if _, err := moderation.ExpireElapsedBan(user); err != nil {
			helper.AbortWithError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Set("user_id", user.ID)
		c.Set("username", user.Username)
		c.Set("role", string(user.Role))

		c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			helper.AbortUnauthenticated(c, "authentication required")
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		helper.AbortForbidden(c, "insufficient permissions")
	}
}

// RequireNotBanned is the uniform banned-caller guard on state-mutating
// routes. An expired timed ban was already cleared by AuthMiddleware, so
// anything still flagged here is an active mute or ban.
func RequireNotBanned() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			helper.AbortUnauthenticated(c, "authentication required")
			return
		}
		if user.IsBanned {
			helper.AbortForbidden(c, "user is banned")
			return
		}
		c.Next()
	}
}
