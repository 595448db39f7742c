package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

const (
	// streakScanLimit bounds how many snapshot rows a streak scan examines.
	streakScanLimit = 30
	// leaderboardWindow is the trailing scope for cross-user ranking.
	leaderboardWindow = 30 * 24 * time.Hour

	weekWindow = 7 * 24 * time.Hour
)

// UserStatsResult is the per-user dashboard summary.
// TodayTasks and CompletedToday are judged by the creation-day window: a
// task created yesterday and completed today counts for neither.
type UserStatsResult struct {
	TodayTasks     int
	CompletedToday int
	WeekTasks      int
	CurrentStreak  int
}

// LeaderboardEntry is one ranked row of the 30-day leaderboard.
type LeaderboardEntry struct {
	User           model.User
	TotalTasks     int
	CompletionRate int
}

// AnalyticsService computes derived productivity views over tasks and the
// daily performance snapshots. All operations are pure reads except
// RecordStats, which replaces a single snapshot row.
type AnalyticsService struct {
	tasks TaskStore
	stats StatsStore
	users UserStore

	now func() time.Time
}

func NewAnalyticsService(tasks TaskStore, stats StatsStore, users UserStore) *AnalyticsService {
	return &AnalyticsService{
		tasks: tasks,
		stats: stats,
		users: users,
		now:   time.Now,
	}
}

// UserStats returns today's task counts, the trailing-week count and the
// current completion streak for the user.
func (s *AnalyticsService) UserStats(ctx context.Context, userID string) (UserStatsResult, error) {
	if userID == "" {
		return UserStatsResult{}, ErrInvalidArgs
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return UserStatsResult{}, err
	}

	now := s.now()
	dayStart := startOfDay(now)

	total, completed, err := s.tasks.CountsBetween(ctx, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return UserStatsResult{}, err
	}

	week, err := s.tasks.CountCreatedSince(ctx, userID, now.Add(-weekWindow))
	if err != nil {
		return UserStatsResult{}, err
	}

	recent, err := s.stats.ListRecent(ctx, userID, streakScanLimit)
	if err != nil {
		return UserStatsResult{}, fmt.Errorf("list recent stats: %w", err)
	}

	return UserStatsResult{
		TodayTasks:     int(total),
		CompletedToday: int(completed),
		WeekTasks:      int(week),
		CurrentStreak:  streakLength(recent),
	}, nil
}

// Leaderboard ranks users by completed tasks over the trailing 30 days.
// Users without tasks in the window are absent; the order of equal
// completed counts is store-defined.
func (s *AnalyticsService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidArgs
	}

	rows, err := s.tasks.Leaderboard(ctx, s.now().Add(-leaderboardWindow), limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LeaderboardEntry{
			User:           row.User,
			TotalTasks:     int(row.TotalTasks),
			CompletionRate: completionRate(row.CompletedTasks, row.TotalTasks),
		})
	}
	return entries, nil
}

// PerformanceHistory returns the user's snapshots for the trailing days,
// oldest first. Days without a stored snapshot are absent; the chart layer
// fills the gaps.
func (s *AnalyticsService) PerformanceHistory(ctx context.Context, userID string, days int) ([]model.PerformanceStats, error) {
	if userID == "" || days <= 0 {
		return nil, ErrInvalidArgs
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	stats, err := s.stats.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return stats, nil
}

// RecordStats stores a daily snapshot, fully replacing any existing row for
// the same user and date.
func (s *AnalyticsService) RecordStats(ctx context.Context, stats *model.PerformanceStats) error {
	if stats == nil || stats.UserID == "" || stats.Date.IsZero() {
		return ErrInvalidArgs
	}
	if stats.TasksCreated < 0 || stats.TasksCompleted < 0 ||
		stats.CompletionRate < 0 || stats.CompletionRate > 100 || stats.StreakDays < 0 {
		return ErrInvalidArgs
	}

	// Key snapshots by local midnight so re-submissions for the same day
	// collide on (user_id, date).
	stats.Date = startOfDay(stats.Date)
	return s.stats.Upsert(ctx, stats)
}

func (s *AnalyticsService) ensureUser(ctx context.Context, userID string) error {
	_, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("find user: %w", err)
	}
}

// streakLength counts consecutive leading rows (newest first) with at least
// one completed task.
func streakLength(recent []model.PerformanceStats) int {
	streak := 0
	for _, row := range recent {
		if row.TasksCompleted <= 0 {
			break
		}
		streak++
	}
	return streak
}

func completionRate(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
