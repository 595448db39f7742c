package service

import (
	"context"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// Store interfaces consumed by the services. The GORM repositories satisfy
// them; tests substitute in-memory fakes. Lookups signal a missing row with
// gorm.ErrRecordNotFound.

type UserStore interface {
	Upsert(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	LinkTelegramChat(ctx context.Context, userID string, chatID int64) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	ListByUser(ctx context.Context, userID string) ([]model.Category, error)
	FindByID(ctx context.Context, userID, id string) (*model.Category, error)
	Update(ctx context.Context, category *model.Category, updates map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Task, error)
	ListByDate(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error)
	FindByID(ctx context.Context, userID, taskID string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task, updates map[string]interface{}) error
	MarkCompleted(ctx context.Context, task *model.Task, completedAt time.Time) error
	Delete(ctx context.Context, userID, taskID string) error
	CountsBetween(ctx context.Context, userID string, from, to time.Time) (total, completed int64, err error)
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error)
	Leaderboard(ctx context.Context, since time.Time, limit int) ([]repository.LeaderboardRow, error)
}

type StatsStore interface {
	Upsert(ctx context.Context, stats *model.PerformanceStats) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]model.PerformanceStats, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]model.PerformanceStats, error)
}
