package moodclient

import (
	"context"
	"sync"
)

// Store keeps the chart state a UI binds to: the active window, cached chart
// data per window, and a loading flag. Swapping to a cached window is
// instant; pushed events keep both caches current without a refetch.
type Store struct {
	client *Client

	mu      sync.Mutex
	active  Window
	cache   map[Window][]ChartPoint
	loading bool
}

func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		active: WindowWeekly,
		cache:  map[Window][]ChartPoint{},
	}
}

// Snapshot returns the active window, its chart data, and whether a fetch is
// in flight. The returned slice must not be mutated.
func (s *Store) Snapshot() (Window, []ChartPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.cache[s.active], s.loading
}

// SelectWindow makes the given window active. Cached data is served
// immediately; otherwise the window is fetched and cached.
func (s *Store) SelectWindow(ctx context.Context, window Window) ([]ChartPoint, error) {
	s.mu.Lock()
	s.active = window
	if cached, ok := s.cache[window]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.loading = true
	s.mu.Unlock()

	return s.fetch(ctx, window)
}

// Refresh refetches the active window from the server.
func (s *Store) Refresh(ctx context.Context) ([]ChartPoint, error) {
	s.mu.Lock()
	window := s.active
	s.loading = true
	s.mu.Unlock()

	return s.fetch(ctx, window)
}

func (s *Store) fetch(ctx context.Context, window Window) ([]ChartPoint, error) {
	resp, err := s.client.SummaryWindow(ctx, window)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return nil, err
	}
	s.cache[window] = resp.Logs
	return resp.Logs, nil
}

// ApplyMessage folds a pushed event into the store. When the event carries
// recomputed summaries both caches are replaced wholesale; when it does not
// (the server degraded), the caches are dropped and the active window is
// refetched.
func (s *Store) ApplyMessage(ctx context.Context, msg Message) error {
	if msg.Data.SummaryData != nil {
		s.mu.Lock()
		s.cache[WindowWeekly] = msg.Data.SummaryData.Weekly
		s.cache[WindowMonthly] = msg.Data.SummaryData.Monthly
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.cache = map[Window][]ChartPoint{}
	s.loading = true
	window := s.active
	s.mu.Unlock()

	_, err := s.fetch(ctx, window)
	return err
}
