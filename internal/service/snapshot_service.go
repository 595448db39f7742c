package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"taskflow/internal/model"
)

// UserSnapshot pairs a user with the snapshot built for them, so the
// notifier can address the digest.
type UserSnapshot struct {
	User  model.User
	Stats model.PerformanceStats
}

// SnapshotService builds the daily PerformanceStats rows that the streak
// and history queries read. It runs once per day from the scheduler and is
// idempotent: re-running a day replaces that day's rows.
type SnapshotService struct {
	users UserStore
	tasks TaskStore
	stats StatsStore
	log   zerolog.Logger

	now func() time.Time
}

func NewSnapshotService(users UserStore, tasks TaskStore, stats StatsStore, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{users: users, tasks: tasks, stats: stats, log: log, now: time.Now}
}

// BuildDailySnapshots upserts today's snapshot for every known user.
// Per-user failures are logged and skipped so one bad row does not starve
// the rest; the joined error is returned for the scheduler log.
func (s *SnapshotService) BuildDailySnapshots(ctx context.Context) ([]UserSnapshot, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	now := s.now()
	var (
		snapshots []UserSnapshot
		errs      error
	)
	for _, user := range users {
		stats, err := s.BuildUserSnapshot(ctx, user.ID, now)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("build snapshot")
			errs = errors.Join(errs, err)
			continue
		}
		if err := s.stats.Upsert(ctx, stats); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("store snapshot")
			errs = errors.Join(errs, err)
			continue
		}
		snapshots = append(snapshots, UserSnapshot{User: user, Stats: *stats})
	}
	return snapshots, errs
}

// BuildUserSnapshot computes the snapshot for the local day containing now.
// The streak carries over from the prior rows when today saw a completion
// and resets to zero otherwise.
func (s *SnapshotService) BuildUserSnapshot(ctx context.Context, userID string, now time.Time) (*model.PerformanceStats, error) {
	if userID == "" {
		return nil, ErrInvalidArgs
	}

	dayStart := startOfDay(now)
	total, completed, err := s.tasks.CountsBetween(ctx, userID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	streak := 0
	if completed > 0 {
		recent, err := s.stats.ListRecent(ctx, userID, streakScanLimit)
		if err != nil {
			return nil, fmt.Errorf("list recent stats: %w", err)
		}
		// A snapshot for today may already exist from an earlier run;
		// only rows before today feed the carry-over.
		prior := recent[:0:0]
		for _, row := range recent {
			if row.Date.Before(dayStart) {
				prior = append(prior, row)
			}
		}
		streak = 1 + streakLength(prior)
	}

	return &model.PerformanceStats{
		UserID:         userID,
		Date:           dayStart,
		TasksCreated:   int(total),
		TasksCompleted: int(completed),
		CompletionRate: completionRate(completed, total),
		StreakDays:     streak,
	}, nil
}
