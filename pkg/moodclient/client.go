package moodclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	SDKName    = "moodtrackr-go"
	SDKVersion = "0.1.0"
)

type ClientOptions struct {
	BaseURL string

	// Token is an existing session token. Leave empty and call Login to
	// obtain one.
	Token string

	Timeout    time.Duration
	HTTPClient *http.Client

	Now func() time.Time
}

// Client talks to the MoodTrackr REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	token string
}

func NewClient(options ClientOptions) (*Client, error) {
	baseURL, err := normalizeBaseURL(options.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	nowFn := options.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		now:        nowFn,
		token:      strings.TrimSpace(options.Token),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("baseURL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid baseURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("baseURL scheme must be http or https, got %q", u.Scheme)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%d err=%s", e.Status, e.Code, e.Message)
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges a Google ID token for a session. The session token is
// stored on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, googleIDToken string) (User, error) {
	var data struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/google", nil, map[string]string{"token": googleIDToken}, &data)
	if err != nil {
		return User{}, err
	}
	c.SetToken(data.Token)
	return data.User, nil
}

func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, nil, &u)
	return u, err
}

func (c *Client) CreateLog(ctx context.Context, in LogInput) (Log, error) {
	var out Log
	err := c.do(ctx, http.MethodPost, "/api/logs", nil, in, &out)
	return out, err
}

type ListLogsOptions struct {
	StartDate string
	EndDate   string
	Limit     int
}

func (c *Client) ListLogs(ctx context.Context, options ListLogsOptions) ([]Log, error) {
	q := url.Values{}
	if options.StartDate != "" {
		q.Set("startDate", options.StartDate)
	}
	if options.EndDate != "" {
		q.Set("endDate", options.EndDate)
	}
	if options.Limit > 0 {
		q.Set("limit", strconv.Itoa(options.Limit))
	}
	var out []Log
	err := c.do(ctx, http.MethodGet, "/api/logs", q, nil, &out)
	return out, err
}

func (c *Client) GetLog(ctx context.Context, id string) (Log, error) {
	var out Log
	err := c.do(ctx, http.MethodGet, "/api/logs/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateLog(ctx context.Context, id string, in LogInput) (Log, error) {
	var out Log
	err := c.do(ctx, http.MethodPut, "/api/logs/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteLog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/logs/"+url.PathEscape(id), nil, nil, nil)
}

type SummaryOptions struct {
	StartDate string
	EndDate   string
	Metrics   []string
}

func (c *Client) Summary(ctx context.Context, options SummaryOptions) (SummaryResponse, error) {
	q := url.Values{}
	if options.StartDate != "" {
		q.Set("startDate", options.StartDate)
	}
	if options.EndDate != "" {
		q.Set("endDate", options.EndDate)
	}
	if len(options.Metrics) > 0 {
		q.Set("metrics", strings.Join(options.Metrics, ","))
	}
	var out SummaryResponse
	err := c.do(ctx, http.MethodGet, "/api/logs/summary", q, nil, &out)
	return out, err
}

// SummaryWindow fetches the summary for the current weekly or monthly chart
// window. Weeks run Sunday through Saturday; months are calendar months.
func (c *Client) SummaryWindow(ctx context.Context, window Window) (SummaryResponse, error) {
	start, end, err := windowRange(c.now().UTC(), window)
	if err != nil {
		return SummaryResponse{}, err
	}
	return c.Summary(ctx, SummaryOptions{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	})
}

func windowRange(now time.Time, window Window) (time.Time, time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch window {
	case WindowWeekly:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 6), nil
	case WindowMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown window %q", window)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", SDKName+"/"+SDKVersion)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var env struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
		Err  string          `json:"err"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 || env.Code != 0 {
		return &APIError{Status: res.StatusCode, Code: env.Code, Message: env.Err}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
