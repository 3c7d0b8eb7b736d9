package moodclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type StreamOptions struct {
	BaseURL string
	Token   string

	// OnMessage receives every pushed event. Required.
	OnMessage func(Message)
	// OnError receives read and reconnect failures. Optional.
	OnError func(error)

	Dialer        *websocket.Dialer
	ReconnectWait time.Duration
	MaxReconnects int
}

// Stream is a live connection to the server's push channel. It reconnects
// after transient failures up to MaxReconnects consecutive attempts.
type Stream struct {
	wsURL         string
	dialer        *websocket.Dialer
	onMessage     func(Message)
	onError       func(error)
	reconnectWait time.Duration
	maxReconnects int

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

func OpenStream(options StreamOptions) (*Stream, error) {
	if options.OnMessage == nil {
		return nil, errors.New("onMessage is required")
	}
	baseURL, err := normalizeBaseURL(options.BaseURL)
	if err != nil {
		return nil, err
	}
	token := strings.TrimSpace(options.Token)
	if token == "" {
		return nil, errors.New("token is required")
	}

	dialer := options.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	wait := options.ReconnectWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 10
	}

	s := &Stream{
		wsURL:         wsURLFrom(baseURL, token),
		dialer:        dialer,
		onMessage:     options.OnMessage,
		onError:       options.OnError,
		reconnectWait: wait,
		maxReconnects: maxReconnects,
		done:          make(chan struct{}),
	}
	if err := s.connect(); err != nil {
		return nil, err
	}
	s.wg.Add(1)
	go s.readLoop()
	return s, nil
}

func wsURLFrom(baseURL, token string) string {
	ws := "ws" + strings.TrimPrefix(baseURL, "http")
	return ws + "/ws?token=" + url.QueryEscape(token)
}

func (s *Stream) connect() error {
	conn, res, err := s.dialer.Dial(s.wsURL, nil)
	if res != nil {
		res.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return errors.New("stream closed")
	}
	s.conn = conn
	s.mu.Unlock()
	return nil
}

func (s *Stream) readLoop() {
	defer s.wg.Done()

	attempts := 0
	for {
		conn := s.current()
		if conn == nil {
			return
		}

		var msg Message
		err := conn.ReadJSON(&msg)
		if err == nil {
			attempts = 0
			s.onMessage(msg)
			continue
		}

		if s.isClosed() {
			return
		}
		s.reportError(err)
		conn.Close()

		for {
			attempts++
			if attempts > s.maxReconnects {
				s.reportError(fmt.Errorf("gave up after %d reconnect attempts", s.maxReconnects))
				return
			}
			select {
			case <-s.done:
				return
			case <-time.After(s.reconnectWait):
			}
			if err := s.connect(); err != nil {
				if s.isClosed() {
					return
				}
				s.reportError(err)
				continue
			}
			break
		}
	}
}

func (s *Stream) current() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.conn
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Stream) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// Close stops the stream and waits for the read loop to exit.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	close(s.done)
	s.mu.Unlock()

	if conn != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}
	s.wg.Wait()
	return nil
}
