package moodclient

// Window selects which chart period a summary covers.
type Window string

const (
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// User is the authenticated account returned by the login and profile
// endpoints.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Log is a daily journal entry as the REST API returns it.
type Log struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	Date               string   `json:"date"`
	Mood               int      `json:"mood"`
	Anxiety            int      `json:"anxiety"`
	StressLevel        int      `json:"stressLevel"`
	SleepHours         *float64 `json:"sleepHours"`
	SleepQuality       *string  `json:"sleepQuality"`
	SleepDisturbances  *bool    `json:"sleepDisturbances"`
	PhysicalActivity   string   `json:"physicalActivity"`
	ActivityDuration   *int     `json:"activityDuration"`
	SocialInteractions *string  `json:"socialInteractions"`
	DepressionSymptoms string   `json:"depressionSymptoms"`
	AnxietySymptoms    string   `json:"anxietySymptoms"`
	Notes              string   `json:"notes"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// LogInput carries the writable fields of a log. Nil fields are omitted, so
// the same type serves both create and partial update.
type LogInput struct {
	Date               string   `json:"date,omitempty"`
	Mood               *int     `json:"mood,omitempty"`
	Anxiety            *int     `json:"anxiety,omitempty"`
	StressLevel        *int     `json:"stressLevel,omitempty"`
	SleepHours         *float64 `json:"sleepHours,omitempty"`
	SleepQuality       *string  `json:"sleepQuality,omitempty"`
	SleepDisturbances  *bool    `json:"sleepDisturbances,omitempty"`
	PhysicalActivity   *string  `json:"physicalActivity,omitempty"`
	ActivityDuration   *int     `json:"activityDuration,omitempty"`
	SocialInteractions *string  `json:"socialInteractions,omitempty"`
	DepressionSymptoms *string  `json:"depressionSymptoms,omitempty"`
	AnxietySymptoms    *string  `json:"anxietySymptoms,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

// ChartPoint is one summary data point (a log flattened for charting).
type ChartPoint struct {
	ID                 string  `json:"id"`
	Date               string  `json:"date"`
	FormattedDate      string  `json:"formattedDate"`
	Mood               int     `json:"mood"`
	Anxiety            int     `json:"anxiety"`
	StressLevel        int     `json:"stressLevel"`
	SleepHours         float64 `json:"sleepHours"`
	SleepQuality       *string `json:"sleepQuality"`
	SleepDisturbances  *bool   `json:"sleepDisturbances"`
	PhysicalActivity   string  `json:"physicalActivity"`
	ActivityDuration   *int    `json:"activityDuration"`
	SocialInteractions *string `json:"socialInteractions"`
	DepressionSymptoms string  `json:"depressionSymptoms"`
	AnxietySymptoms    string  `json:"anxietySymptoms"`
	Notes              string  `json:"notes,omitempty"`
}

// SummaryResponse is the payload of GET /api/logs/summary.
type SummaryResponse struct {
	Logs     []ChartPoint       `json:"logs"`
	Averages map[string]float64 `json:"averages"`
	Period   struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"period"`
}

// Events pushed over the live stream.
const (
	EventLogCreated = "log:created"
	EventLogUpdated = "log:updated"
	EventLogDeleted = "log:deleted"
)

// Summaries holds both chart windows as pushed alongside a mutation event.
type Summaries struct {
	Weekly  []ChartPoint `json:"weekly"`
	Monthly []ChartPoint `json:"monthly"`
}

// EventData is the payload of a pushed message. SummaryData is null when the
// server could not recompute the charts; consumers should refetch.
type EventData struct {
	Log          *Log       `json:"log,omitempty"`
	DeletedLogID string     `json:"deletedLogId,omitempty"`
	SummaryData  *Summaries `json:"summaryData"`
}

// Message is one event frame from the live stream.
type Message struct {
	Event string    `json:"event"`
	Data  EventData `json:"data"`
}
