package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the profile owned by the upstream auth provider.
// Rows are upserted from its claims and treated as read-only otherwise.
type User struct {
	ID              string `gorm:"primaryKey"`
	Email           string `gorm:"uniqueIndex"`
	FirstName       string
	LastName        string
	ProfileImageURL string
	TelegramChatID  int64 // 0 when the user has not linked a chat
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayName returns the best human-readable name available.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
