package realtime

import (
	"context"
	"log"
	"time"

	"github.com/JJ810/MoodTrackr/internal/summary"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier implements the mutation-notification protocol: after a write
// commits it recomputes both windows fresh from storage and publishes one
// message to the owner's room. Recomputation failure degrades to a message
// without summaryData; nothing here ever fails the mutation itself.
type Notifier struct {
	hub *Hub
	db  *gorm.DB
	now func() time.Time
}

func NewNotifier(hub *Hub, db *gorm.DB) *Notifier {
	return &Notifier{hub: hub, db: db, now: time.Now}
}

func (n *Notifier) LogCreated(ctx context.Context, userID uuid.UUID, logDTO any) {
	n.emit(ctx, userID, Message{Event: EventLogCreated, Data: LogEvent{Log: logDTO}})
}

func (n *Notifier) LogUpdated(ctx context.Context, userID uuid.UUID, logDTO any) {
	n.emit(ctx, userID, Message{Event: EventLogUpdated, Data: LogEvent{Log: logDTO}})
}

func (n *Notifier) LogDeleted(ctx context.Context, userID, logID uuid.UUID) {
	n.emit(ctx, userID, Message{Event: EventLogDeleted, Data: LogEvent{DeletedLogID: logID.String()}})
}

func (n *Notifier) emit(ctx context.Context, userID uuid.UUID, msg Message) {
	if n == nil || n.hub == nil {
		return
	}
	summaries, err := n.recompute(ctx, userID)
	if err != nil {
		// Degraded broadcast: the event still goes out so clients know to
		// refetch.
		log.Printf("realtime: summary recompute failed for user %s: %v", userID, err)
	} else {
		msg.Data.SummaryData = summaries
	}
	n.hub.Publish(userID.String(), msg)
}

// recompute reads both windows at the same wall-clock instant. The two reads
// are independent; small staleness between them is acceptable.
func (n *Notifier) recompute(ctx context.Context, userID uuid.UUID) (*Summaries, error) {
	now := n.now()
	weekStart, weekEnd := summary.WeekWindow(now)
	monthStart, monthEnd := summary.MonthWindow(now)

	weekly, err := summary.Build(ctx, n.db, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	monthly, err := summary.Build(ctx, n.db, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return &Summaries{Weekly: weekly, Monthly: monthly}, nil
}
