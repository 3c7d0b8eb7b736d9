package httpserver

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/JJ810/MoodTrackr/internal/auth"
	"github.com/JJ810/MoodTrackr/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebsocketHandler authenticates the realtime handshake and enrolls the
// session in the caller's broadcast room. The bearer credential is checked
// before the upgrade; a bad token rejects the handshake outright.
func WebsocketHandler(hub *realtime.Hub, secret []byte, corsOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      originChecker(corsOrigin),
	}
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		uid, _, err := auth.VerifyToken(secret, token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws: upgrade failed for user %s: %v", uid, err)
			return
		}
		realtime.NewSession(hub, conn, uid.String()).Start()
	}
}

func originChecker(corsOrigin string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		// Non-browser clients (tests, CLI tooling) send no Origin.
		if origin == "" {
			return true
		}
		return corsOrigin == "*" || strings.EqualFold(origin, corsOrigin)
	}
}
