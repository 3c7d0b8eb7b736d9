package testkit

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TestGoogleClientID = "moodtrackr-test-client"

// FakeGoogle is a stand-in for Google's OAuth infrastructure: it serves a JWKS
// endpoint and mints RS256 ID tokens that verify against it.
type FakeGoogle struct {
	Key  *rsa.PrivateKey
	Kid  string
	JWKS *httptest.Server
}

func NewFakeGoogle(t testing.TB) *FakeGoogle {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	fg := &FakeGoogle{Key: key, Kid: "test-key-1"}
	fg.JWKS = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": fg.Kid,
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(fg.JWKS.Close)
	return fg
}

// IDToken mints a signed Google-style ID token for the given identity.
func (f *FakeGoogle) IDToken(t testing.TB, subject, email, name, picture string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":     "https://accounts.google.com",
		"aud":     TestGoogleClientID,
		"sub":     subject,
		"email":   email,
		"name":    name,
		"picture": picture,
		"iat":     now.Add(-time.Minute).Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = f.Kid
	signed, err := tok.SignedString(f.Key)
	if err != nil {
		t.Fatalf("sign id token: %v", err)
	}
	return signed
}
