package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/JJ810/MoodTrackr/internal/testkit"
	"github.com/google/uuid"
)

func TestCreateLog_ValidationAndNormalization(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	client := s.HTTP.Client()
	login := testkit.Login(t, s, "carol@example.com", "Carol")
	headers := testkit.AuthHeader(login.Token)

	// Mood and anxiety are mandatory.
	status, body := testkit.DoJSON(t, client, http.MethodPost, s.HTTP.URL+"/api/logs", map[string]any{"mood": 3}, headers)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 without anxiety, got %d body=%s", status, string(body))
	}

	// Ratings are 1..5.
	status, _ = testkit.DoJSON(t, client, http.MethodPost, s.HTTP.URL+"/api/logs", map[string]any{"mood": 6, "anxiety": 2}, headers)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for mood=6, got %d", status)
	}

	// Enum values are checked.
	status, _ = testkit.DoJSON(t, client, http.MethodPost, s.HTTP.URL+"/api/logs",
		map[string]any{"mood": 3, "anxiety": 2, "sleepQuality": "amazing"}, headers)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad sleepQuality, got %d", status)
	}

	created := testkit.CreateLog(t, s, login.Token, map[string]any{
		"date":               "2026-08-10",
		"mood":               4,
		"anxiety":            2,
		"stressLevel":        3,
		"sleepHours":         7.5,
		"sleepQuality":       "Good",
		"sleepDisturbances":  []string{"nightmares"},
		"physicalActivity":   []string{"walking", "yoga"},
		"activityDuration":   45,
		"socialInteractions": "moderate",
		"depressionSymptoms": []string{"low-energy"},
		"anxietySymptoms":    "restlessness",
		"notes":              "  pretty good day  ",
	})

	if created["userId"] != login.UserID.String() {
		t.Fatalf("expected owner %s, got %v", login.UserID, created["userId"])
	}
	if created["date"] != "2026-08-10T00:00:00Z" {
		t.Fatalf("expected UTC midnight date, got %v", created["date"])
	}
	if created["sleepQuality"] != "good" {
		t.Fatalf("expected lowercased enum, got %v", created["sleepQuality"])
	}
	if created["sleepDisturbances"] != true {
		t.Fatalf("expected disturbance list to normalize to true, got %v", created["sleepDisturbances"])
	}
	if created["physicalActivity"] != "walking,yoga" {
		t.Fatalf("expected comma-joined activity, got %v", created["physicalActivity"])
	}
	if created["depressionSymptoms"] != "low-energy" || created["anxietySymptoms"] != "restlessness" {
		t.Fatalf("unexpected symptoms: %v / %v", created["depressionSymptoms"], created["anxietySymptoms"])
	}
	if created["notes"] != "pretty good day" {
		t.Fatalf("expected trimmed notes, got %v", created["notes"])
	}
}

func TestCreateLog_DuplicateDateConflict(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	client := s.HTTP.Client()
	login := testkit.Login(t, s, "dan@example.com", "Dan")
	headers := testkit.AuthHeader(login.Token)

	testkit.CreateLog(t, s, login.Token, map[string]any{"date": "2026-08-11", "mood": 4, "anxiety": 2})

	status, body := testkit.DoJSON(t, client, http.MethodPost, s.HTTP.URL+"/api/logs",
		map[string]any{"date": "2026-08-11", "mood": 1, "anxiety": 1}, headers)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate date, got %d body=%s", status, string(body))
	}

	// The losing request left nothing behind.
	status, body = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs", nil, headers)
	if status != http.StatusOK {
		t.Fatalf("list status=%d", status)
	}
	var rows []map[string]any
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 log after conflict, got %d", len(rows))
	}
	if rows[0]["mood"].(float64) != 4 {
		t.Fatalf("expected original log untouched, got %v", rows[0]["mood"])
	}

	// Another user can use the same date.
	other := testkit.Login(t, s, "erin@example.com", "Erin")
	testkit.CreateLog(t, s, other.Token, map[string]any{"date": "2026-08-11", "mood": 5, "anxiety": 1})
}

func TestListLogs_RangeLimitAndIsolation(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	client := s.HTTP.Client()
	login := testkit.Login(t, s, "fay@example.com", "Fay")
	other := testkit.Login(t, s, "gus@example.com", "Gus")
	headers := testkit.AuthHeader(login.Token)

	for _, d := range []string{"2026-08-01", "2026-08-05", "2026-08-09"} {
		testkit.CreateLog(t, s, login.Token, map[string]any{"date": d, "mood": 3, "anxiety": 3})
	}
	testkit.CreateLog(t, s, other.Token, map[string]any{"date": "2026-08-05", "mood": 1, "anxiety": 1})

	status, body := testkit.DoJSON(t, client, http.MethodGet,
		s.HTTP.URL+"/api/logs?startDate=2026-08-02&endDate=2026-08-31", nil, headers)
	if status != http.StatusOK {
		t.Fatalf("list status=%d body=%s", status, string(body))
	}
	var rows []map[string]any
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 logs in range, got %d", len(rows))
	}
	// Newest first, and never another user's rows.
	if rows[0]["date"] != "2026-08-09T00:00:00Z" {
		t.Fatalf("expected newest first, got %v", rows[0]["date"])
	}
	for _, row := range rows {
		if row["userId"] != login.UserID.String() {
			t.Fatalf("leaked another user's log: %v", row)
		}
	}

	status, body = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs?limit=1", nil, headers)
	if status != http.StatusOK {
		t.Fatalf("list limit status=%d", status)
	}
	rows = nil
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected limit=1, got %d", len(rows))
	}

	status, _ = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs?startDate=garbage", nil, headers)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad startDate, got %d", status)
	}
}

func TestGetUpdateDeleteLog(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	client := s.HTTP.Client()
	login := testkit.Login(t, s, "hana@example.com", "Hana")
	intruder := testkit.Login(t, s, "ivan@example.com", "Ivan")
	headers := testkit.AuthHeader(login.Token)

	created := testkit.CreateLog(t, s, login.Token, map[string]any{"date": "2026-08-12", "mood": 4, "anxiety": 2, "notes": "fine"})
	id := created["id"].(string)

	// Fetch by id.
	status, body := testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs/"+id, nil, headers)
	if status != http.StatusOK {
		t.Fatalf("get status=%d body=%s", status, string(body))
	}

	// Unknown and malformed ids both read as absent.
	status, _ = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs/"+uuid.NewString(), nil, headers)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", status)
	}
	status, _ = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs/not-a-uuid", nil, headers)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", status)
	}

	// Another user sees 404, not 403.
	status, _ = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs/"+id, nil, testkit.AuthHeader(intruder.Token))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's log, got %d", status)
	}

	// Partial update touches only the provided fields; date is immutable.
	status, body = testkit.DoJSON(t, client, http.MethodPut, s.HTTP.URL+"/api/logs/"+id,
		map[string]any{"notes": "much better", "mood": 5, "date": "2026-01-01"}, headers)
	if status != http.StatusOK {
		t.Fatalf("update status=%d body=%s", status, string(body))
	}
	var updated map[string]any
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated["notes"] != "much better" || updated["mood"].(float64) != 5 {
		t.Fatalf("unexpected update result: %v", updated)
	}
	if updated["anxiety"].(float64) != 2 {
		t.Fatalf("expected untouched anxiety, got %v", updated["anxiety"])
	}
	if updated["date"] != "2026-08-12T00:00:00Z" {
		t.Fatalf("expected date unchanged, got %v", updated["date"])
	}

	// Update validation still applies.
	status, _ = testkit.DoJSON(t, client, http.MethodPut, s.HTTP.URL+"/api/logs/"+id, map[string]any{"mood": 0}, headers)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for mood=0, got %d", status)
	}

	// Intruders cannot update or delete.
	status, _ = testkit.DoJSON(t, client, http.MethodPut, s.HTTP.URL+"/api/logs/"+id, map[string]any{"mood": 1}, testkit.AuthHeader(intruder.Token))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's update, got %d", status)
	}
	status, _ = testkit.DoJSON(t, client, http.MethodDelete, s.HTTP.URL+"/api/logs/"+id, nil, testkit.AuthHeader(intruder.Token))
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's delete, got %d", status)
	}

	status, body = testkit.DoJSON(t, client, http.MethodDelete, s.HTTP.URL+"/api/logs/"+id, nil, headers)
	if status != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", status, string(body))
	}
	var deleted map[string]any
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &deleted); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if deleted["id"] != id {
		t.Fatalf("expected deleted id echoed, got %v", deleted["id"])
	}

	status, _ = testkit.DoJSON(t, client, http.MethodGet, s.HTTP.URL+"/api/logs/"+id, nil, headers)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	client := s.HTTP.Client()
	login := testkit.Login(t, s, "june@example.com", "June")
	headers := testkit.AuthHeader(login.Token)

	testkit.CreateLog(t, s, login.Token, map[string]any{"date": "2026-08-03", "mood": 2, "anxiety": 4, "sleepHours": 6})
	testkit.CreateLog(t, s, login.Token, map[string]any{"date": "2026-08-05", "mood": 4, "anxiety": 2, "sleepHours": 8})
	// Outside the queried period.
	testkit.CreateLog(t, s, login.Token, map[string]any{"date": "2026-07-01", "mood": 1, "anxiety": 5})

	status, body := testkit.DoJSON(t, client, http.MethodGet,
		s.HTTP.URL+"/api/logs/summary?startDate=2026-08-01&endDate=2026-08-07&metrics=mood,anxiety,sleepHours", nil, headers)
	if status != http.StatusOK {
		t.Fatalf("summary status=%d body=%s", status, string(body))
	}

	var data struct {
		Logs     []map[string]any   `json:"logs"`
		Averages map[string]float64 `json:"averages"`
		Period   struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"period"`
	}
	if err := json.Unmarshal(testkit.DecodeEnvelope(t, body).Data, &data); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(data.Logs) != 2 {
		t.Fatalf("expected 2 logs in period, got %d", len(data.Logs))
	}
	if data.Logs[0]["formattedDate"] != "Aug 03" || data.Logs[1]["formattedDate"] != "Aug 05" {
		t.Fatalf("expected chronological chart points, got %v / %v", data.Logs[0]["formattedDate"], data.Logs[1]["formattedDate"])
	}
	if data.Averages["mood"] != 3 || data.Averages["anxiety"] != 3 || data.Averages["sleepHours"] != 7 {
		t.Fatalf("unexpected averages: %v", data.Averages)
	}
	if data.Period.Start != "2026-08-01T00:00:00Z" || data.Period.End != "2026-08-07T00:00:00Z" {
		t.Fatalf("unexpected period: %+v", data.Period)
	}
}
