package store

import (
	"context"
	"errors"
	"strings"

	"github.com/JJ810/MoodTrackr/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRow struct {
	ID      uuid.UUID
	Email   string
	Name    string
	Picture string
}

func userRowFrom(u model.User) UserRow {
	return UserRow{ID: u.ID, Email: u.Email, Name: u.Name, Picture: u.Picture}
}

// UpsertGoogleUser creates the user on first login and refreshes name/picture
// on subsequent logins. Users are never deleted.
func UpsertGoogleUser(ctx context.Context, db *gorm.DB, email, name, picture string) (UserRow, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return UserRow{}, errors.New("email required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}

	var u model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = model.User{ID: uuid.New(), Email: email, Name: name, Picture: picture}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return UserRow{}, err
		}
		return userRowFrom(u), nil
	}
	if err != nil {
		return UserRow{}, err
	}

	updates := map[string]any{"name": name}
	if strings.TrimSpace(picture) != "" {
		updates["picture"] = picture
	}
	if err := db.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
		return UserRow{}, err
	}
	return userRowFrom(u), nil
}

func GetUserByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (UserRow, bool, error) {
	if id == uuid.Nil {
		return UserRow{}, false, nil
	}
	var u model.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserRow{}, false, nil
		}
		return UserRow{}, false, err
	}
	return userRowFrom(u), true, nil
}
