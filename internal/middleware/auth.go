package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/mealplanner-backend/internal/service"
)

// ContextSessionToken is the key SessionAuth stores the validated raw
// token under for downstream handlers.
const ContextSessionToken = "session_token"

// SessionValidator resolves a session token to its session record.
type SessionValidator interface {
	SessionFromToken(ctx context.Context, token string) (*service.Session, error)
}

// SessionAuth guards a route behind a valid login cookie. The validated
// token is stored on the request context for downstream handlers.
func SessionAuth(cookieName string, validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "message": "not logged in"})
			c.Abort()
			return
		}

		if _, err := validator.SessionFromToken(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "message": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(ContextSessionToken, token)
		c.Next()
	}
}
