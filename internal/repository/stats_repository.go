package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskflow/internal/model"
)

// StatsRepository stores the per-user daily performance snapshots.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Upsert inserts the snapshot or fully replaces the existing row for the
// same (user, date). Incoming values win; nothing is accumulated.
func (r *StatsRepository) Upsert(ctx context.Context, stats *model.PerformanceStats) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tasks_created", "tasks_completed", "completion_rate", "streak_days",
		}),
	}).Create(stats).Error
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListSince returns the user's snapshots with date >= since, oldest first.
func (r *StatsRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]model.PerformanceStats, error) {
	var stats []model.PerformanceStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("list stats since: %w", err)
	}
	return stats, nil
}

// ListRecent returns up to limit snapshots, newest first.
func (r *StatsRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.PerformanceStats, error) {
	var stats []model.PerformanceStats
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("list recent stats: %w", err)
	}
	return stats, nil
}
