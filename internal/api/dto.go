package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JJ810/MoodTrackr/internal/model"
)

// LogDTO is the REST and notification shape of a log row. Nullable columns
// stay null; enums are strings end-to-end.
type LogDTO struct {
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

func logDTOFrom(row model.Log) LogDTO {
	return LogDTO{
		ID:                 row.ID.String(),
		UserID:             row.UserID.String(),
		Date:               row.Date.UTC().Format(time.RFC3339),
		Mood:               row.Mood,
		Anxiety:            row.Anxiety,
		StressLevel:        row.StressLevel,
		SleepHours:         row.SleepHours,
		SleepQuality:       row.SleepQuality,
		SleepDisturbances:  row.SleepDisturbances,
		PhysicalActivity:   row.PhysicalActivity,
		ActivityDuration:   row.ActivityDuration,
		SocialInteractions: row.SocialInteractions,
		DepressionSymptoms: row.DepressionSymptoms,
		AnxietySymptoms:    row.AnxietySymptoms,
		Notes:              row.Notes,
		CreatedAt:          row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          row.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type UserDTO struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// StringList accepts either a JSON array of strings or a single string and
// normalizes to a comma-joined string, the canonical storage form for
// activity/symptom lists.
type StringList string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList(strings.TrimSpace(s))
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or array of strings")
	}
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	*l = StringList(strings.Join(items, ","))
	return nil
}

func (l StringList) String() string { return string(l) }
