package testkit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JJ810/MoodTrackr/internal/auth"
	"github.com/JJ810/MoodTrackr/internal/config"
	"github.com/JJ810/MoodTrackr/internal/httpserver"
	"github.com/JJ810/MoodTrackr/internal/realtime"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const TestJWTSecret = "01234567890123456789012345678901"

type Server struct {
	DB     *gorm.DB
	Hub    *realtime.Hub
	Google *FakeGoogle
	Config config.Config
	HTTP   *httptest.Server
}

func NewServer(t testing.TB) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := OpenTestDB(t)
	google := NewFakeGoogle(t)
	cfg := config.Config{
		HTTPAddr:       "127.0.0.1:0",
		JWTSecret:      []byte(TestJWTSecret),
		AuthTokenTTL:   time.Hour,
		GoogleClientID: TestGoogleClientID,
		GoogleJWKSURL:  google.JWKS.URL,
		CORSOrigin:     "*",
	}

	verifier, err := auth.NewGoogleVerifier(auth.GoogleVerifierConfig{
		ClientID: cfg.GoogleClientID,
		JWKSURL:  cfg.GoogleJWKSURL,
	})
	if err != nil {
		t.Fatalf("NewGoogleVerifier: %v", err)
	}

	hub := realtime.NewHub()
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(hubCtx)
	}()
	t.Cleanup(func() {
		stopHub()
		<-hubDone
	})

	srv := httpserver.New(cfg, db, hub, verifier, nil)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &Server{
		DB:     db,
		Hub:    hub,
		Google: google,
		Config: cfg,
		HTTP:   ts,
	}
}
