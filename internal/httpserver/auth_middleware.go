package httpserver

import (
	"net/http"
	"strings"

	"github.com/JJ810/MoodTrackr/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey = "user_id"
	ctxEmailKey  = "user_email"
)

func RequireUser(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "err": "access token is required"})
			c.Abort()
			return
		}

		uid, claims, err := auth.VerifyToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "err": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(ctxUserIDKey, uid)
		c.Set(ctxEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return ""
}
