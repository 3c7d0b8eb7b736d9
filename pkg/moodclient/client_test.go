package moodclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := normalizeBaseURL(""); err == nil {
		t.Fatalf("expected error for empty baseURL")
	}
	if _, err := normalizeBaseURL("ftp://host"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	got, err := normalizeBaseURL("  http://localhost:3000/ ")
	if err != nil || got != "http://localhost:3000" {
		t.Fatalf("expected trimmed url, got %q err=%v", got, err)
	}
}

func TestWindowRange(t *testing.T) {
	t.Parallel()

	// Wednesday 2026-08-12.
	now := time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)

	start, end, err := windowRange(now, WindowWeekly)
	if err != nil {
		t.Fatalf("windowRange weekly: %v", err)
	}
	if start.Format("2006-01-02") != "2026-08-09" || end.Format("2006-01-02") != "2026-08-15" {
		t.Fatalf("unexpected week %v..%v", start, end)
	}

	start, end, err = windowRange(now, WindowMonthly)
	if err != nil {
		t.Fatalf("windowRange monthly: %v", err)
	}
	if start.Format("2006-01-02") != "2026-08-01" || end.Format("2006-01-02") != "2026-08-31" {
		t.Fatalf("unexpected month %v..%v", start, end)
	}

	if _, _, err := windowRange(now, Window("yearly")); err == nil {
		t.Fatalf("expected error for unknown window")
	}
}

func TestClient_RequestsAndErrors(t *testing.T) {
	t.Parallel()

	var lastPath, lastAuth, lastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		lastAuth = r.Header.Get("Authorization")
		lastQuery = r.URL.RawQuery

		switch {
		case r.URL.Path == "/api/auth/google":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 0,
				"data": map[string]any{
					"token": "session-token",
					"user":  map[string]any{"id": "u1", "email": "a@b.com", "name": "A"},
				},
			})
		case r.URL.Path == "/api/logs" && r.Method == http.MethodPost:
			var in map[string]any
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 0,
				"data": map[string]any{"id": "log-1", "mood": in["mood"]},
			})
		case r.URL.Path == "/api/logs/summary":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 0,
				"data": map[string]any{
					"logs":     []map[string]any{{"id": "log-1", "mood": 4}},
					"averages": map[string]float64{"mood": 4},
					"period":   map[string]string{"start": "s", "end": "e"},
				},
			})
		case r.URL.Path == "/api/logs/missing":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 404, "err": "log not found"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 404, "err": "no route"})
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientOptions{
		BaseURL: srv.URL,
		Now:     func() time.Time { return time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	user, err := c.Login(ctx, "google-id-token")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "a@b.com" || c.Token() != "session-token" {
		t.Fatalf("unexpected login state: user=%+v token=%q", user, c.Token())
	}

	mood := 4
	anxiety := 2
	created, err := c.CreateLog(ctx, LogInput{Mood: &mood, Anxiety: &anxiety})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	if created.ID != "log-1" || created.Mood != 4 {
		t.Fatalf("unexpected log: %+v", created)
	}
	if lastAuth != "Bearer session-token" {
		t.Fatalf("expected bearer header, got %q", lastAuth)
	}

	// The weekly window is computed from the injected clock.
	resp, err := c.SummaryWindow(ctx, WindowWeekly)
	if err != nil {
		t.Fatalf("SummaryWindow: %v", err)
	}
	if lastPath != "/api/logs/summary" {
		t.Fatalf("unexpected path %q", lastPath)
	}
	if lastQuery != "endDate=2026-08-15&startDate=2026-08-09" {
		t.Fatalf("unexpected query %q", lastQuery)
	}
	if len(resp.Logs) != 1 || resp.Averages["mood"] != 4 {
		t.Fatalf("unexpected summary: %+v", resp)
	}

	_, err = c.GetLog(ctx, "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "log not found" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}
