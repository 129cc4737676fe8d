// middleware/auth.go
package middleware

import (
	"strings"

	"govconnect/models"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ActorMiddleware resolves the bearer token into a models.Actor once per request. A
// missing header leaves the request anonymous; a bad token is rejected.
func ActorMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractSessionClaims(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		var actor models.Actor
		switch claims.Role {
		case utils.RoleCitizen:
			actor = models.Citizen(claims.Subject)
		case utils.RoleOfficial:
			actor = models.Official(claims.AuthorityID)
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor resolved for this request, or the zero Actor.
func ActorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// SetActor stores actor on the request context.
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).Valid() {
			abortUnauthorized(c, "Authentication required")
			return
		}
		c.Next()
	}
}

func RequireCitizen() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		switch {
		case !actor.Valid():
			abortUnauthorized(c, "Authentication required")
		case !actor.IsCitizen():
			abortForbidden(c, "Citizen session required")
		default:
			c.Next()
		}
	}
}

func RequireOfficial() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		switch {
		case !actor.Valid():
			abortUnauthorized(c, "Authentication required")
		case !actor.IsOfficial():
			abortForbidden(c, "Official session required")
		default:
			c.Next()
		}
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	utils.JSONError(c, utils.KindUnauthorized, msg)
	c.Abort()
}

func abortForbidden(c *gin.Context, msg string) {
	utils.JSONError(c, utils.KindForbidden, msg)
	c.Abort()
}
