// Package summary derives the weekly/monthly chart views from stored logs.
// Views are recomputed from storage on every call; nothing here caches or
// patches incrementally, so a view is always a pure function of the rows and
// the wall clock.
package summary

import (
	"context"
	"time"

	"github.com/JJ810/MoodTrackr/internal/model"
	"github.com/JJ810/MoodTrackr/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Projection is one chart point: a log flattened for the client, optional
// numerics defaulted to zero and symptom lists to the "none" sentinel, while
// nullable categoricals pass through as null.
type Projection struct {
	ID                 string   `json:"id"`
	Date               string   `json:"date"`
	FormattedDate      string   `json:"formattedDate"`
	Mood               int      `json:"mood"`
	Anxiety            int      `json:"anxiety"`
	StressLevel        int      `json:"stressLevel"`
	SleepHours         float64  `json:"sleepHours"`
	SleepQuality       *string  `json:"sleepQuality"`
	SleepDisturbances  *bool    `json:"sleepDisturbances"`
	PhysicalActivity   string   `json:"physicalActivity"`
	ActivityDuration   *int     `json:"activityDuration"`
	SocialInteractions *string  `json:"socialInteractions"`
	DepressionSymptoms string   `json:"depressionSymptoms"`
	AnxietySymptoms    string   `json:"anxietySymptoms"`
	Notes              string   `json:"notes,omitempty"`
}

const sentinelNone = "none"

// WeekWindow returns the current calendar week, Sunday through Saturday, UTC.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	day := store.DateOnly(now)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// MonthWindow returns the first and last day of the current month, UTC.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	day := store.DateOnly(now)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// Build reads the user's logs inside [start, end] and projects them in date
// order.
func Build(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]Projection, error) {
	rows, err := store.ListLogs(ctx, db, userID, store.ListLogsParams{
		From:      &start,
		To:        &end,
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]Projection, 0, len(rows))
	for _, row := range rows {
		out = append(out, Project(row))
	}
	return out, nil
}

func Project(row model.Log) Projection {
	p := Projection{
		ID:                 row.ID.String(),
		Date:               row.Date.UTC().Format(time.RFC3339),
		FormattedDate:      row.Date.UTC().Format("Jan 02"),
		Mood:               row.Mood,
		Anxiety:            row.Anxiety,
		StressLevel:        row.StressLevel,
		SleepQuality:       row.SleepQuality,
		SleepDisturbances:  row.SleepDisturbances,
		PhysicalActivity:   row.PhysicalActivity,
		ActivityDuration:   row.ActivityDuration,
		SocialInteractions: row.SocialInteractions,
		DepressionSymptoms: orSentinel(row.DepressionSymptoms),
		AnxietySymptoms:    orSentinel(row.AnxietySymptoms),
		Notes:              row.Notes,
	}
	if row.SleepHours != nil {
		p.SleepHours = *row.SleepHours
	}
	return p
}

func orSentinel(s string) string {
	if s == "" {
		return sentinelNone
	}
	return s
}

// Averages computes the mean of each requested numeric metric over the
// projections. Metrics with no recorded values are left out.
func Averages(projections []Projection, metrics []string) map[string]float64 {
	out := map[string]float64{}
	for _, metric := range metrics {
		sum := 0.0
		n := 0
		for _, p := range projections {
			v, ok := metricValue(p, metric)
			if !ok {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			out[metric] = sum / float64(n)
		}
	}
	return out
}

func metricValue(p Projection, metric string) (float64, bool) {
	switch metric {
	case "mood":
		return float64(p.Mood), true
	case "anxiety":
		return float64(p.Anxiety), true
	case "stressLevel":
		return float64(p.StressLevel), true
	case "sleepHours":
		return p.SleepHours, p.SleepHours > 0
	case "activityDuration":
		if p.ActivityDuration == nil {
			return 0, false
		}
		return float64(*p.ActivityDuration), true
	default:
		return 0, false
	}
}
