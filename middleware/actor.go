// middleware/actor.go
package middleware

import (
	"github.com/gin-gonic/gin"
)

// ActorHeader carries the identity of the caller performing mutations.
// The resolver layer in front of this service authenticates callers and
// decides who may grant or revoke; this service only records the identity
// it is handed.
const ActorHeader = "X-Actor"

// Actor copies the acting caller's identity from the trusted header into
// the request context for audit attribution.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(ActorHeader); actor != "" {
			c.Set("actor", actor)
		}
		c.Next()
	}
}
