package httpserver

import (
	"net/http"
	"time"

	"github.com/JJ810/MoodTrackr/internal/api"
	"github.com/JJ810/MoodTrackr/internal/auth"
	"github.com/JJ810/MoodTrackr/internal/config"
	"github.com/JJ810/MoodTrackr/internal/metrics"
	"github.com/JJ810/MoodTrackr/internal/openapi"
	"github.com/JJ810/MoodTrackr/internal/realtime"
	"github.com/gin-gonic/gin"
	swgui "github.com/swaggest/swgui/v3"
	"gorm.io/gorm"
)

// New assembles the REST router and realtime handshake. All collaborators are
// passed in explicitly; nothing here reaches for package state.
func New(cfg config.Config, db *gorm.DB, hub *realtime.Hub, verifier *auth.GoogleVerifier, recorder *metrics.RedisRecorder) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSOrigin))

	router.GET("/openapi.json", func(c *gin.Context) { c.JSON(http.StatusOK, openapi.Spec()) })
	router.GET("/docs/*any", gin.WrapH(swgui.New("MoodTrackr API", "/openapi.json", "/docs")))

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	notifier := realtime.NewNotifier(hub, db)

	apiRoot := router.Group("/api")
	{
		apiRoot.GET("/status", api.StatusHandler(db))
		apiRoot.POST("/auth/google", api.GoogleLoginHandler(db, verifier, cfg.JWTSecret, cfg.AuthTokenTTL, recorder))

		authed := apiRoot.Group("")
		authed.Use(RequireUser(cfg.JWTSecret))
		authed.GET("/auth/user", api.UserHandler(db))
		authed.POST("/logs", api.CreateLogHandler(db, notifier, recorder))
		authed.GET("/logs", api.ListLogsHandler(db))
		authed.GET("/logs/summary", api.SummaryHandler(db))
		authed.GET("/logs/:id", api.GetLogHandler(db))
		authed.PUT("/logs/:id", api.UpdateLogHandler(db, notifier, recorder))
		authed.DELETE("/logs/:id", api.DeleteLogHandler(db, notifier, recorder))
	}

	router.GET("/ws", WebsocketHandler(hub, cfg.JWTSecret, cfg.CORSOrigin))

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
