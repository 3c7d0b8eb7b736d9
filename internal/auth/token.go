package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "moodtrackr"

// Claims is the session token payload handed out after a Google login and
// presented on every REST request and realtime handshake.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func SignToken(secret []byte, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("missing secret")
	}
	now := time.Now()
	claims := Claims{
		Email: strings.ToLower(strings.TrimSpace(email)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken checks signature, expiry and issuer and returns the user id.
func VerifyToken(secret []byte, token string) (uuid.UUID, Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(secret) == 0 {
		return uuid.Nil, Claims{}, errors.New("missing token")
	}
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return uuid.Nil, Claims{}, err
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, Claims{}, errors.New("invalid token subject")
	}
	return uid, claims, nil
}
