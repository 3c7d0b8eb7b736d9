package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type APIEnvelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Err  string          `json:"err"`
}

func DoJSON(t testing.TB, client *http.Client, method, rawURL string, body any, headers map[string]string) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, rawURL, rd)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("client.Do: %v", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return res.StatusCode, b
}

func DecodeEnvelope(t testing.TB, body []byte) APIEnvelope {
	t.Helper()

	var env APIEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, string(body))
	}
	return env
}

func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	Email  string
}

// Login exchanges a fake Google ID token for a session token via the real
// login endpoint.
func Login(t testing.TB, s *Server, email, name string) LoginResult {
	t.Helper()

	idToken := s.Google.IDToken(t, "sub-"+email, email, name, "")
	status, body := DoJSON(t, s.HTTP.Client(), http.MethodPost, s.HTTP.URL+"/api/auth/google", map[string]any{"token": idToken}, nil)
	if status != http.StatusOK {
		t.Fatalf("login status=%d body=%s", status, string(body))
	}
	env := DecodeEnvelope(t, body)
	if env.Code != 0 {
		t.Fatalf("login code=%d err=%s", env.Code, env.Err)
	}

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("login data: %v", err)
	}
	return LoginResult{Token: data.Token, UserID: data.User.ID, Email: data.User.Email}
}

// CreateLog posts a daily log and returns the decoded response object.
func CreateLog(t testing.TB, s *Server, token string, payload map[string]any) map[string]any {
	t.Helper()

	status, body := DoJSON(t, s.HTTP.Client(), http.MethodPost, s.HTTP.URL+"/api/logs", payload, AuthHeader(token))
	if status != http.StatusCreated {
		t.Fatalf("create log status=%d body=%s", status, string(body))
	}
	env := DecodeEnvelope(t, body)
	var out map[string]any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("create log data: %v", err)
	}
	return out
}

func WSURL(baseURL, token string) string {
	return "ws" + strings.TrimPrefix(baseURL, "http") + "/ws?token=" + url.QueryEscape(token)
}

// DialWS opens a live update stream against the test server.
func DialWS(t testing.TB, s *Server, token string) *websocket.Conn {
	t.Helper()

	conn, res, err := websocket.DefaultDialer.Dial(WSURL(s.HTTP.URL, token), nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if res != nil {
		res.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ReadEvent reads the next pushed message, failing if none arrives in time.
func ReadEvent(t testing.TB, conn *websocket.Conn, timeout time.Duration) map[string]any {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read ws event: %v", err)
	}
	return msg
}
