package realtime

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func recv(t *testing.T, ch chan Message) Message {
	t.Helper()

	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatalf("send channel closed")
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message")
	}
	return Message{}
}

func TestHub_FanoutWithinRoom_IsolationAcrossRooms(t *testing.T) {
	t.Parallel()

	hub := startHub(t)

	alice1 := NewSession(hub, nil, "alice")
	alice2 := NewSession(hub, nil, "alice")
	bob := NewSession(hub, nil, "bob")
	hub.register <- alice1
	hub.register <- alice2
	hub.register <- bob
	waitFor(t, "registrations", func() bool {
		return hub.SessionCount("alice") == 2 && hub.SessionCount("bob") == 1
	})

	hub.Publish("alice", Message{Event: EventLogCreated})

	if msg := recv(t, alice1.send); msg.Event != EventLogCreated {
		t.Fatalf("unexpected event %q", msg.Event)
	}
	if msg := recv(t, alice2.send); msg.Event != EventLogCreated {
		t.Fatalf("unexpected event %q", msg.Event)
	}
	select {
	case msg := <-bob.send:
		t.Fatalf("bob received alice's event: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterLeavesRoom(t *testing.T) {
	t.Parallel()

	hub := startHub(t)

	s1 := NewSession(hub, nil, "carol")
	s2 := NewSession(hub, nil, "carol")
	hub.register <- s1
	hub.register <- s2
	waitFor(t, "registrations", func() bool { return hub.SessionCount("carol") == 2 })

	hub.unregister <- s1
	waitFor(t, "unregister", func() bool { return hub.SessionCount("carol") == 1 })

	if _, ok := <-s1.send; ok {
		t.Fatalf("expected removed session's channel to be closed")
	}

	hub.Publish("carol", Message{Event: EventLogDeleted})
	if msg := recv(t, s2.send); msg.Event != EventLogDeleted {
		t.Fatalf("expected remaining session to still receive, got %q", msg.Event)
	}
}

func TestHub_SlowSessionEvicted(t *testing.T) {
	t.Parallel()

	hub := startHub(t)

	slow := NewSession(hub, nil, "dave")
	hub.register <- slow
	waitFor(t, "registration", func() bool { return hub.SessionCount("dave") == 1 })

	// Never drain: once the send buffer is full the hub drops the session
	// instead of blocking.
	for i := 0; i < cap(slow.send)+1; i++ {
		hub.Publish("dave", Message{Event: EventLogUpdated})
	}
	waitFor(t, "eviction", func() bool { return hub.SessionCount("dave") == 0 })
}

func TestHub_StopClosesSessions(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()

	s := NewSession(hub, nil, "erin")
	hub.register <- s
	waitFor(t, "registration", func() bool { return hub.SessionCount("erin") == 1 })

	cancel()
	<-done

	if _, ok := <-s.send; ok {
		t.Fatalf("expected send channel closed on hub stop")
	}
	if hub.SessionCount("erin") != 0 {
		t.Fatalf("expected empty rooms after stop")
	}
}
