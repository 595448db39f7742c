package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups tasks by area (work, health, study, etc.).
type Category struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Name      string `gorm:"size:100"`
	Color     string `gorm:"size:7;default:#3B82F6"`
	CreatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
