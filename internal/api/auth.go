package api

import (
	"context"
	"net/http"
	"time"

	"github.com/JJ810/MoodTrackr/internal/auth"
	"github.com/JJ810/MoodTrackr/internal/metrics"
	"github.com/JJ810/MoodTrackr/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoogleLoginHandler exchanges a verified Google ID token for a session token,
// creating the user on first login and refreshing name/picture after that.
func GoogleLoginHandler(db *gorm.DB, verifier *auth.GoogleVerifier, secret []byte, tokenTTL time.Duration, recorder *metrics.RedisRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
			respondErr(c, http.StatusBadRequest, "token is required")
			return
		}

		profile, err := verifier.Verify(req.Token)
		if err != nil {
			respondErr(c, http.StatusUnauthorized, "invalid google token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		u, err := store.UpsertGoogleUser(ctx, db, profile.Email, profile.Name, profile.Picture)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "authentication failed")
			return
		}

		token, err := auth.SignToken(secret, u.ID, u.Email, tokenTTL)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "authentication failed")
			return
		}

		recorder.ObserveLogin(ctx, u.ID.String(), time.Now())
		respondOK(c, gin.H{
			"token": token,
			"user":  UserDTO{ID: u.ID.String(), Email: u.Email, Name: u.Name, Picture: u.Picture},
		})
	}
}

func UserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		u, ok, err := store.GetUserByID(ctx, db, uid)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to retrieve user information")
			return
		}
		if !ok {
			respondErr(c, http.StatusNotFound, "user not found")
			return
		}
		respondOK(c, UserDTO{ID: u.ID.String(), Email: u.Email, Name: u.Name, Picture: u.Picture})
	}
}

func userIDFromGin(c *gin.Context) uuid.UUID {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
