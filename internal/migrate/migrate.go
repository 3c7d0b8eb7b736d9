package migrate

import (
	"context"

	"github.com/JJ810/MoodTrackr/internal/model"
	"gorm.io/gorm"
)

func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	gdb := db.WithContext(ctx)
	if err := gdb.AutoMigrate(&model.User{}, &model.Log{}); err != nil {
		return err
	}
	// The one-entry-per-day invariant lives in the schema, not the application:
	// concurrent creates for the same date race here and the loser gets a
	// duplicate-key error.
	return gdb.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_logs_user_date ON logs (user_id, date)`).Error
}
