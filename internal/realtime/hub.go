package realtime

import (
	"context"
	"log"
	"sync"
)

type roomMessage struct {
	userID string
	msg    Message
}

// Hub owns the per-user broadcast rooms. All authenticated sessions for a user
// are enrolled in the room named by the user id and every notification for
// that user reaches all of them; sessions of other users never see it.
//
// The hub is an explicitly constructed service, wired in at process start and
// stopped by canceling the Run context. Membership and broadcasting are
// serialized in the Run goroutine.
type Hub struct {
	register   chan *Session
	unregister chan *Session
	broadcast  chan roomMessage

	mu    sync.RWMutex
	rooms map[string]map[*Session]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Session),
		unregister: make(chan *Session),
		broadcast:  make(chan roomMessage, 256),
		rooms:      make(map[string]map[*Session]bool),
	}
}

// Run processes membership changes and broadcasts until ctx is canceled, then
// closes every session.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case s := <-h.register:
			h.add(s)
		case s := <-h.unregister:
			h.remove(s)
		case rm := <-h.broadcast:
			h.deliver(rm)
		}
	}
}

// Publish queues msg for every session in the user's room. Non-blocking: if
// the hub is saturated the message is dropped and logged, and clients recover
// on their next fetch.
func (h *Hub) Publish(userID string, msg Message) {
	select {
	case h.broadcast <- roomMessage{userID: userID, msg: msg}:
	default:
		log.Printf("realtime: broadcast queue full, dropping %s for user %s", msg.Event, userID)
	}
}

// SessionCount reports the number of sessions enrolled for a user.
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	room := h.rooms[s.userID]
	if room == nil {
		room = make(map[*Session]bool)
		h.rooms[s.userID] = room
	}
	room[s] = true
	n := len(room)
	h.mu.Unlock()
	log.Printf("realtime: session joined user=%s sessions=%d", s.userID, n)
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	room := h.rooms[s.userID]
	if room != nil && room[s] {
		delete(room, s)
		close(s.send)
		if len(room) == 0 {
			delete(h.rooms, s.userID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) deliver(rm roomMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[rm.userID]
	var evicted []*Session
	for s := range room {
		select {
		case s.send <- rm.msg:
		default:
			// Session can't keep up; drop it rather than block the hub.
			evicted = append(evicted, s)
		}
	}
	for _, s := range evicted {
		delete(room, s)
		close(s.send)
	}
	if len(room) == 0 {
		delete(h.rooms, rm.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for userID, room := range h.rooms {
		for s := range room {
			close(s.send)
			n++
		}
		delete(h.rooms, userID)
	}
	log.Printf("realtime: hub stopped, closed %d sessions", n)
}
