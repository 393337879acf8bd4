package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxUserIDKey is the gin context key for the authenticated user id.
const ctxUserIDKey = "user_id"

// TokenVerifier validates a bearer token and yields the user id it carries.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// authMiddleware gates every entity route behind a valid bearer token.
func authMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "Authorization token is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := verifier.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "Invalid or expired token"})
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}
