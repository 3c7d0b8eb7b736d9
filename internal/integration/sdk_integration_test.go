package integration

import (
	"context"
	"testing"
	"time"

	"github.com/JJ810/MoodTrackr/internal/testkit"
	"github.com/JJ810/MoodTrackr/pkg/moodclient"
)

func TestGoSDK_EndToEnd(t *testing.T) {
	t.Parallel()

	s := testkit.NewServer(t)
	ctx := context.Background()

	client, err := moodclient.NewClient(moodclient.ClientOptions{BaseURL: s.HTTP.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	idToken := s.Google.IDToken(t, "sub-sdk", "sdk@example.com", "SDK User", "")
	user, err := client.Login(ctx, idToken)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "sdk@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}

	messages := make(chan moodclient.Message, 8)
	stream, err := moodclient.OpenStream(moodclient.StreamOptions{
		BaseURL:   s.HTTP.URL,
		Token:     client.Token(),
		OnMessage: func(m moodclient.Message) { messages <- m },
	})
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	t.Cleanup(func() { _ = stream.Close() })
	waitForSessions(t, s, user.ID, 1)

	viewStore := moodclient.NewStore(client)
	if _, err := viewStore.SelectWindow(ctx, moodclient.WindowWeekly); err != nil {
		t.Fatalf("SelectWindow: %v", err)
	}

	mood := 4
	anxiety := 2
	created, err := client.CreateLog(ctx, moodclient.LogInput{Mood: &mood, Anxiety: &anxiety})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}

	var msg moodclient.Message
	select {
	case msg = <-messages:
	case <-time.After(2 * time.Second):
		t.Fatalf("no pushed event")
	}
	if msg.Event != moodclient.EventLogCreated || msg.Data.Log == nil || msg.Data.Log.ID != created.ID {
		t.Fatalf("unexpected event: %+v", msg)
	}

	if err := viewStore.ApplyMessage(ctx, msg); err != nil {
		t.Fatalf("ApplyMessage: %v", err)
	}
	_, points, _ := viewStore.Snapshot()
	found := false
	for _, p := range points {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected new log in weekly chart, got %+v", points)
	}

	// Deleting pushes recomputed windows without the log.
	if err := client.DeleteLog(ctx, created.ID); err != nil {
		t.Fatalf("DeleteLog: %v", err)
	}
	select {
	case msg = <-messages:
	case <-time.After(2 * time.Second):
		t.Fatalf("no delete event")
	}
	if msg.Event != moodclient.EventLogDeleted || msg.Data.DeletedLogID != created.ID {
		t.Fatalf("unexpected delete event: %+v", msg)
	}
	if err := viewStore.ApplyMessage(ctx, msg); err != nil {
		t.Fatalf("ApplyMessage delete: %v", err)
	}
	_, points, _ = viewStore.Snapshot()
	for _, p := range points {
		if p.ID == created.ID {
			t.Fatalf("deleted log still in chart: %+v", points)
		}
	}
}
