package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newSnapshotFixture(t *testing.T) (*fakeDB, *SnapshotService) {
	t.Helper()

	db := newFakeDB()
	svc := NewSnapshotService(db.Users(), db.Tasks(), db.Stats(), zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return db, svc
}

func TestBuildUserSnapshot_CountsAndRate(t *testing.T) {
	t.Parallel()

	db, svc := newSnapshotFixture(t)
	user := mustSeedUser(t, db, "alice")

	dayStart := startOfDay(testNow)
	for i := 0; i < 5; i++ {
		seedTask(t, db, user.ID, dayStart.Add(time.Duration(i+1)*time.Hour), i < 3)
	}

	stats, err := svc.BuildUserSnapshot(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("BuildUserSnapshot returned error: %v", err)
	}

	if stats.TasksCreated != 5 {
		t.Errorf("expected 5 created, got %d", stats.TasksCreated)
	}
	if stats.TasksCompleted != 3 {
		t.Errorf("expected 3 completed, got %d", stats.TasksCompleted)
	}
	if stats.CompletionRate != 60 {
		t.Errorf("expected rate 60, got %d", stats.CompletionRate)
	}
	if !stats.Date.Equal(dayStart) {
		t.Errorf("expected date %v, got %v", dayStart, stats.Date)
	}
	if stats.StreakDays != 1 {
		t.Errorf("expected streak 1 with no prior rows, got %d", stats.StreakDays)
	}
}

func TestBuildUserSnapshot_StreakCarriesOver(t *testing.T) {
	t.Parallel()

	db, svc := newSnapshotFixture(t)
	user := mustSeedUser(t, db, "alice")

	seedStats(t, db, user.ID, statsDay(-1), 2)
	seedStats(t, db, user.ID, statsDay(-2), 1)
	seedStats(t, db, user.ID, statsDay(-3), 0)
	seedTask(t, db, user.ID, startOfDay(testNow).Add(time.Hour), true)

	stats, err := svc.BuildUserSnapshot(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("BuildUserSnapshot returned error: %v", err)
	}
	if stats.StreakDays != 3 {
		t.Errorf("expected streak 3 (two prior days + today), got %d", stats.StreakDays)
	}
}

func TestBuildUserSnapshot_StreakResetsWithoutCompletions(t *testing.T) {
	t.Parallel()

	db, svc := newSnapshotFixture(t)
	user := mustSeedUser(t, db, "alice")

	seedStats(t, db, user.ID, statsDay(-1), 4)
	seedTask(t, db, user.ID, startOfDay(testNow).Add(time.Hour), false)

	stats, err := svc.BuildUserSnapshot(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("BuildUserSnapshot returned error: %v", err)
	}
	if stats.StreakDays != 0 {
		t.Errorf("expected streak 0, got %d", stats.StreakDays)
	}
}

func TestBuildUserSnapshot_IgnoresTodaysExistingRow(t *testing.T) {
	t.Parallel()

	db, svc := newSnapshotFixture(t)
	user := mustSeedUser(t, db, "alice")

	// A row from an earlier run today must not inflate the carry-over.
	seedStats(t, db, user.ID, statsDay(0), 1)
	seedStats(t, db, user.ID, statsDay(-1), 2)
	seedTask(t, db, user.ID, startOfDay(testNow).Add(time.Hour), true)

	stats, err := svc.BuildUserSnapshot(context.Background(), user.ID, testNow)
	if err != nil {
		t.Fatalf("BuildUserSnapshot returned error: %v", err)
	}
	if stats.StreakDays != 2 {
		t.Errorf("expected streak 2, got %d", stats.StreakDays)
	}
}

func TestBuildDailySnapshots_CoversAllUsersIdempotently(t *testing.T) {
	t.Parallel()

	db, svc := newSnapshotFixture(t)
	alice := mustSeedUser(t, db, "alice")
	bob := mustSeedUser(t, db, "bob")

	seedTask(t, db, alice.ID, startOfDay(testNow).Add(time.Hour), true)
	seedTask(t, db, bob.ID, startOfDay(testNow).Add(2*time.Hour), false)

	for run := 0; run < 2; run++ {
		snapshots, err := svc.BuildDailySnapshots(context.Background())
		if err != nil {
			t.Fatalf("run %d: BuildDailySnapshots returned error: %v", run, err)
		}
		if len(snapshots) != 2 {
			t.Fatalf("run %d: expected 2 snapshots, got %d", run, len(snapshots))
		}
	}

	for _, userID := range []string{alice.ID, bob.ID} {
		rows, err := db.Stats().ListRecent(context.Background(), userID, 10)
		if err != nil {
			t.Fatalf("ListRecent returned error: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("user %s: expected one row after two runs, got %d", userID, len(rows))
		}
	}
}
