package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex;column:email"`
	Name      string    `gorm:"type:varchar(200);not null;column:name"`
	Picture   string    `gorm:"type:text;column:picture"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at"`
}

func (User) TableName() string { return "users" }

// Log is one user's journal entry for a single calendar day.
// Date is stored at UTC midnight; (user_id, date) is unique.
type Log struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_logs_user_date,priority:1;column:user_id"`
	Date               time.Time `gorm:"not null;uniqueIndex:idx_logs_user_date,priority:2;column:date"`
	Mood               int       `gorm:"not null;column:mood"`
	Anxiety            int       `gorm:"not null;column:anxiety"`
	StressLevel        int       `gorm:"not null;column:stress_level"`
	SleepHours         *float64  `gorm:"column:sleep_hours"`
	SleepQuality       *string   `gorm:"type:varchar(20);column:sleep_quality"`
	SleepDisturbances  *bool     `gorm:"column:sleep_disturbances"`
	PhysicalActivity   string    `gorm:"type:text;column:physical_activity"`
	ActivityDuration   *int      `gorm:"column:activity_duration"`
	SocialInteractions *string   `gorm:"type:varchar(20);column:social_interactions"`
	DepressionSymptoms string    `gorm:"type:text;column:depression_symptoms"`
	AnxietySymptoms    string    `gorm:"type:text;column:anxiety_symptoms"`
	Notes              string    `gorm:"type:text;column:notes"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime;column:created_at"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime;column:updated_at"`
}

func (Log) TableName() string { return "logs" }
