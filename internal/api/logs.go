package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JJ810/MoodTrackr/internal/metrics"
	"github.com/JJ810/MoodTrackr/internal/model"
	"github.com/JJ810/MoodTrackr/internal/realtime"
	"github.com/JJ810/MoodTrackr/internal/store"
	"github.com/JJ810/MoodTrackr/internal/summary"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	sleepQualities     = map[string]bool{"poor": true, "fair": true, "good": true, "excellent": true}
	socialInteractions = map[string]bool{"none": true, "minimal": true, "moderate": true, "high": true}
)

type createLogRequest struct {
	Date               string      `json:"date"`
	Mood               *int        `json:"mood"`
	Anxiety            *int        `json:"anxiety"`
	StressLevel        *int        `json:"stressLevel"`
	SleepHours         *float64    `json:"sleepHours"`
	SleepQuality       *string     `json:"sleepQuality"`
	SleepDisturbances  *BoolOrList `json:"sleepDisturbances"`
	PhysicalActivity   *StringList `json:"physicalActivity"`
	ActivityDuration   *int        `json:"activityDuration"`
	SocialInteractions *string     `json:"socialInteractions"`
	DepressionSymptoms *StringList `json:"depressionSymptoms"`
	AnxietySymptoms    *StringList `json:"anxietySymptoms"`
	Notes              *string     `json:"notes"`
}

// BoolOrList accepts a bool or a list of disturbance names; a non-empty list
// means true.
type BoolOrList bool

func (b *BoolOrList) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = BoolOrList(v)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected bool or array of strings")
	}
	*b = BoolOrList(len(items) > 0)
	return nil
}

func CreateLogHandler(db *gorm.DB, notifier *realtime.Notifier, recorder *metrics.RedisRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Mood == nil || req.Anxiety == nil {
			respondErr(c, http.StatusBadRequest, "mood and anxiety levels are required")
			return
		}
		row := model.Log{UserID: uid, Date: time.Now().UTC()}
		if req.Date != "" {
			d, err := parseDate(req.Date)
			if err != nil {
				respondErr(c, http.StatusBadRequest, "invalid date")
				return
			}
			row.Date = d
		}
		if err := applyMetrics(&row, req); err != nil {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.CreateLog(ctx, db, &row); err != nil {
			if errors.Is(err, store.ErrDuplicateDate) {
				respondErr(c, http.StatusConflict, store.ErrDuplicateDate.Error())
				return
			}
			respondErr(c, http.StatusInternalServerError, "failed to create log")
			return
		}

		dto := logDTOFrom(row)
		notifier.LogCreated(ctx, uid, dto)
		recorder.ObserveMutation(ctx, "created", uid.String(), time.Now())
		respondStatus(c, http.StatusCreated, dto)
	}
}

func ListLogsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		params := store.ListLogsParams{}
		if v := strings.TrimSpace(c.Query("startDate")); v != "" {
			d, err := parseDate(v)
			if err != nil {
				respondErr(c, http.StatusBadRequest, "invalid startDate")
				return
			}
			params.From = &d
		}
		if v := strings.TrimSpace(c.Query("endDate")); v != "" {
			d, err := parseDate(v)
			if err != nil {
				respondErr(c, http.StatusBadRequest, "invalid endDate")
				return
			}
			params.To = &d
		}
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				respondErr(c, http.StatusBadRequest, "invalid limit")
				return
			}
			params.Limit = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		rows, err := store.ListLogs(ctx, db, uid, params)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to fetch logs")
			return
		}
		out := make([]LogDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, logDTOFrom(row))
		}
		respondOK(c, out)
	}
}

func GetLogHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		row, ok, err := store.GetLog(ctx, db, uid, logID)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to fetch log")
			return
		}
		if !ok {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}
		respondOK(c, logDTOFrom(row))
	}
}

func UpdateLogHandler(db *gorm.DB, notifier *realtime.Notifier, recorder *metrics.RedisRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}

		var req createLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}
		updates, err := updateColumns(req)
		if err != nil {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		row, ok, err := store.UpdateLog(ctx, db, uid, logID, updates)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to update log")
			return
		}
		if !ok {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}

		dto := logDTOFrom(row)
		notifier.LogUpdated(ctx, uid, dto)
		recorder.ObserveMutation(ctx, "updated", uid.String(), time.Now())
		respondOK(c, dto)
	}
}

func DeleteLogHandler(db *gorm.DB, notifier *realtime.Notifier, recorder *metrics.RedisRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		ok, err := store.DeleteLog(ctx, db, uid, logID)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to delete log")
			return
		}
		if !ok {
			respondErr(c, http.StatusNotFound, "log not found")
			return
		}

		notifier.LogDeleted(ctx, uid, logID)
		recorder.ObserveMutation(ctx, "deleted", uid.String(), time.Now())
		respondStatus(c, http.StatusOK, gin.H{"id": logID.String()})
	}
}

func SummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := userIDFromGin(c)
		if uid == uuid.Nil {
			respondErr(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		now := time.Now().UTC()
		start := store.DateOnly(now.AddDate(0, 0, -30))
		end := store.DateOnly(now)
		if v := strings.TrimSpace(c.Query("startDate")); v != "" {
			d, err := parseDate(v)
			if err != nil {
				respondErr(c, http.StatusBadRequest, "invalid startDate")
				return
			}
			start = d
		}
		if v := strings.TrimSpace(c.Query("endDate")); v != "" {
			d, err := parseDate(v)
			if err != nil {
				respondErr(c, http.StatusBadRequest, "invalid endDate")
				return
			}
			end = d
		}
		metricsList := []string{"mood", "anxiety", "stressLevel"}
		if v := strings.TrimSpace(c.Query("metrics")); v != "" {
			metricsList = strings.Split(v, ",")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		projections, err := summary.Build(ctx, db, uid, start, end)
		if err != nil {
			respondErr(c, http.StatusInternalServerError, "failed to fetch logs summary")
			return
		}

		respondOK(c, gin.H{
			"logs":     projections,
			"averages": summary.Averages(projections, metricsList),
			"period": gin.H{
				"start": start.Format(time.RFC3339),
				"end":   end.Format(time.RFC3339),
			},
		})
	}
}

// applyMetrics validates and copies every provided metric field onto the row.
func applyMetrics(row *model.Log, req createLogRequest) error {
	if req.Mood != nil {
		if !validRating(*req.Mood) {
			return errors.New("mood must be between 1 and 5")
		}
		row.Mood = *req.Mood
	}
	if req.Anxiety != nil {
		if !validRating(*req.Anxiety) {
			return errors.New("anxiety must be between 1 and 5")
		}
		row.Anxiety = *req.Anxiety
	}
	if req.StressLevel != nil {
		if !validRating(*req.StressLevel) {
			return errors.New("stressLevel must be between 1 and 5")
		}
		row.StressLevel = *req.StressLevel
	}
	if req.SleepHours != nil {
		if *req.SleepHours < 0 || *req.SleepHours > 24 {
			return errors.New("sleepHours must be between 0 and 24")
		}
		row.SleepHours = req.SleepHours
	}
	if req.SleepQuality != nil {
		q := strings.ToLower(strings.TrimSpace(*req.SleepQuality))
		if !sleepQualities[q] {
			return errors.New("sleepQuality must be one of poor, fair, good, excellent")
		}
		row.SleepQuality = &q
	}
	if req.SleepDisturbances != nil {
		v := bool(*req.SleepDisturbances)
		row.SleepDisturbances = &v
	}
	if req.PhysicalActivity != nil {
		row.PhysicalActivity = req.PhysicalActivity.String()
	}
	if req.ActivityDuration != nil {
		if *req.ActivityDuration < 0 {
			return errors.New("activityDuration must be >= 0")
		}
		row.ActivityDuration = req.ActivityDuration
	}
	if req.SocialInteractions != nil {
		s := strings.ToLower(strings.TrimSpace(*req.SocialInteractions))
		if !socialInteractions[s] {
			return errors.New("socialInteractions must be one of none, minimal, moderate, high")
		}
		row.SocialInteractions = &s
	}
	if req.DepressionSymptoms != nil {
		row.DepressionSymptoms = req.DepressionSymptoms.String()
	}
	if req.AnxietySymptoms != nil {
		row.AnxietySymptoms = req.AnxietySymptoms.String()
	}
	if req.Notes != nil {
		row.Notes = strings.TrimSpace(*req.Notes)
	}
	return nil
}

// updateColumns turns the provided fields of a partial update into column
// assignments. Date is immutable; a client wanting a different day deletes and
// recreates.
func updateColumns(req createLogRequest) (map[string]any, error) {
	var row model.Log
	if err := applyMetrics(&row, req); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Mood != nil {
		updates["mood"] = row.Mood
	}
	if req.Anxiety != nil {
		updates["anxiety"] = row.Anxiety
	}
	if req.StressLevel != nil {
		updates["stress_level"] = row.StressLevel
	}
	if req.SleepHours != nil {
		updates["sleep_hours"] = *row.SleepHours
	}
	if req.SleepQuality != nil {
		updates["sleep_quality"] = *row.SleepQuality
	}
	if req.SleepDisturbances != nil {
		updates["sleep_disturbances"] = *row.SleepDisturbances
	}
	if req.PhysicalActivity != nil {
		updates["physical_activity"] = row.PhysicalActivity
	}
	if req.ActivityDuration != nil {
		updates["activity_duration"] = *row.ActivityDuration
	}
	if req.SocialInteractions != nil {
		updates["social_interactions"] = *row.SocialInteractions
	}
	if req.DepressionSymptoms != nil {
		updates["depression_symptoms"] = row.DepressionSymptoms
	}
	if req.AnxietySymptoms != nil {
		updates["anxiety_symptoms"] = row.AnxietySymptoms
	}
	if req.Notes != nil {
		updates["notes"] = row.Notes
	}
	return updates, nil
}

func validRating(v int) bool { return v >= 1 && v <= 5 }

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return store.DateOnly(t), nil
}
