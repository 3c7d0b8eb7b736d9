package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JJ810/MoodTrackr/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateDate reports a create for a (user, date) pair that already has a
// log. The unique index is the arbiter: concurrent creates race in the
// database and the loser lands here.
var ErrDuplicateDate = errors.New("a log already exists for this date")

// DateOnly truncates t to UTC midnight, the canonical storage form for Log.Date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func CreateLog(ctx context.Context, db *gorm.DB, row *model.Log) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.Date = DateOnly(row.Date)
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateDate
		}
		return err
	}
	return nil
}

type ListLogsParams struct {
	From      *time.Time
	To        *time.Time
	Limit     int
	Ascending bool
}

func ListLogs(ctx context.Context, db *gorm.DB, userID uuid.UUID, p ListLogsParams) ([]model.Log, error) {
	q := db.WithContext(ctx).Model(&model.Log{}).Where("user_id = ?", userID)
	if p.From != nil {
		q = q.Where("date >= ?", DateOnly(*p.From))
	}
	if p.To != nil {
		q = q.Where("date <= ?", DateOnly(*p.To))
	}
	if p.Ascending {
		q = q.Order("date ASC")
	} else {
		q = q.Order("date DESC")
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	var rows []model.Log
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func GetLog(ctx context.Context, db *gorm.DB, userID, logID uuid.UUID) (model.Log, bool, error) {
	var row model.Log
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", logID, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Log{}, false, nil
		}
		return model.Log{}, false, err
	}
	return row, true, nil
}

// UpdateLog applies the given column updates to the caller's log and returns
// the fresh row. A log owned by another user is indistinguishable from a
// missing one.
func UpdateLog(ctx context.Context, db *gorm.DB, userID, logID uuid.UUID, updates map[string]any) (model.Log, bool, error) {
	if len(updates) == 0 {
		return GetLog(ctx, db, userID, logID)
	}
	res := db.WithContext(ctx).Model(&model.Log{}).
		Where("id = ? AND user_id = ?", logID, userID).
		Updates(updates)
	if res.Error != nil {
		return model.Log{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Log{}, false, nil
	}
	return GetLog(ctx, db, userID, logID)
}

func DeleteLog(ctx context.Context, db *gorm.DB, userID, logID uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", logID, userID).Delete(&model.Log{})
	return res.RowsAffected > 0, res.Error
}

func CountLogs(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.Log{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// glebarez/sqlite before error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
