package server

import (
	"strings"

	"github.com/buestan/buestanflow/internal/actorcontext"
	"github.com/gin-gonic/gin"
)

const HeaderActor = "X-Actor-Id"

// RequireActor gates mutating routes behind actor identification so the audit
// trail always has an author.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(HeaderActor))
		if actor == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := actorcontext.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
