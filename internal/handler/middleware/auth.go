package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"courtbook/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthMiddleware trusts tokens minted by the identity service; this service
// only verifies the signature and extracts the requester.
type AuthMiddleware struct {
	verifier *token.Verifier
}

const ctxUserIDKey = "user_id"

func NewAuthMiddleware(verifier *token.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tok string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tok = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if tok == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, err := m.verifier.VerifyRequester(tok)
		if err != nil {
			slog.Warn("Token verification failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
