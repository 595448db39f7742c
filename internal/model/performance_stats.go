package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceStats is a per-user daily snapshot of task activity.
// One row per (user, date); the date is truncated to the local midnight.
type PerformanceStats struct {
	ID             string    `gorm:"primaryKey"`
	UserID         string    `gorm:"index:idx_stats_user_date,unique"`
	Date           time.Time `gorm:"index:idx_stats_user_date,unique"`
	TasksCreated   int       `gorm:"default:0"`
	TasksCompleted int       `gorm:"default:0"`
	CompletionRate int       `gorm:"default:0"` // integer percentage
	StreakDays     int       `gorm:"default:0"`
	CreatedAt      time.Time
}

func (s *PerformanceStats) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
