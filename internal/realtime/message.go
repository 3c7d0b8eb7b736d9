package realtime

import "github.com/JJ810/MoodTrackr/internal/summary"

// Event names carried on the wire.
const (
	EventLogCreated = "log:created"
	EventLogUpdated = "log:updated"
	EventLogDeleted = "log:deleted"
)

// Summaries is both recomputed windows, pushed wholesale so clients replace
// their caches instead of merging.
type Summaries struct {
	Weekly  []summary.Projection `json:"weekly"`
	Monthly []summary.Projection `json:"monthly"`
}

// LogEvent is the single payload shape for every mutation notification.
// Log is set for created/updated, DeletedLogID for deleted. SummaryData is nil
// only when recomputation failed; clients fall back to a fetch then.
type LogEvent struct {
	Log          any        `json:"log,omitempty"`
	DeletedLogID string     `json:"deletedLogId,omitempty"`
	SummaryData  *Summaries `json:"summaryData"`
}

// Message is one websocket frame: an event discriminator plus its payload.
type Message struct {
	Event string   `json:"event"`
	Data  LogEvent `json:"data"`
}
