package middleware

import (
	"net/http"
	"strings"

	"github.com/dkorolev/petalmarket/internal/auth"
	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware and read by handlers.
const (
	ActorIDKey   = "actorID"
	ActorKindKey = "actorKind"
)

// AuthMiddleware validates the Bearer token and attaches the verified
// actor (id + kind) to the request context. Handlers never read
// identity from anywhere else.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		actor, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ActorIDKey, actor.ID)
		c.Set(ActorKindKey, actor.Kind)
		c.Next()
	}
}

// RequireCustomer rejects requests whose token does not belong to a
// customer account. Must run after AuthMiddleware.
func RequireCustomer() gin.HandlerFunc {
	return requireKind(models.ActorCustomer)
}

// RequireShop rejects requests whose token does not belong to a shop
// account. Must run after AuthMiddleware.
func RequireShop() gin.HandlerFunc {
	return requireKind(models.ActorShop)
}

func requireKind(kind models.ActorKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ActorKindKey)
		if !exists || raw.(models.ActorKind) != kind {
			c.JSON(http.StatusForbidden, gin.H{"error": "This route is not available for your account type"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor rebuilds the verified identity from the request context.
func Actor(c *gin.Context) models.Actor {
	id, _ := c.Get(ActorIDKey)
	kind, _ := c.Get(ActorKindKey)
	return models.Actor{ID: id.(int64), Kind: kind.(models.ActorKind)}
}
