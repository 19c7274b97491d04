package auth

import (
	"github.com/gin-gonic/gin"
)

// IdentityContextKey is the key used to store the caller identity in the Gin context
const IdentityContextKey = "identity"

// DefaultIdentityHeader carries the caller's user ID when no token is sent.
const DefaultIdentityHeader = "X-User-ID"

// Middleware resolves the caller identity for every request. It never
// rejects a request; endpoints decide whether they need an identity.
func Middleware(resolver *Resolver, identityHeader string) gin.HandlerFunc {
	if identityHeader == "" {
		identityHeader = DefaultIdentityHeader
	}
	return func(c *gin.Context) {
		id, ok := resolver.Resolve(
			BearerToken(c.GetHeader("Authorization")),
			c.GetHeader(identityHeader),
		)
		if ok {
			c.Set(IdentityContextKey, id)
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity resolved for the request, if any.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(IdentityContextKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := value.(Identity)
	if !ok || id.IsAnonymous() {
		return Identity{}, false
	}
	return id, true
}
