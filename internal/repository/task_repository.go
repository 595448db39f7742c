package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// TaskRepository handles CRUD and aggregate queries for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListByDate returns the user's tasks created within [from, to).
func (r *TaskRepository) ListByDate(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by date: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task, updates map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) MarkCompleted(ctx context.Context, task *model.Task, completedAt time.Time) error {
	task.Status = model.StatusCompleted
	task.CompletedAt = &completedAt
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CountsBetween counts the user's tasks created within [from, to) and the
// completed subset, in a single aggregate query.
func (r *TaskRepository) CountsBetween(ctx context.Context, userID string, from, to time.Time) (total, completed int64, err error) {
	var row struct {
		Total     int64
		Completed int64
	}
	err = r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COUNT(id) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed", model.StatusCompleted).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	return row.Total, row.Completed, nil
}

// CountCreatedSince counts the user's tasks created at or after since.
func (r *TaskRepository) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count tasks since: %w", err)
	}
	return total, nil
}

// LeaderboardRow is one ranked entry of the cross-user leaderboard query.
type LeaderboardRow struct {
	User           model.User
	TotalTasks     int64
	CompletedTasks int64
}

// Leaderboard groups tasks created at or after since by user and ranks the
// groups by completed-task count descending. The join drops tasks whose owner
// has no users row before the limit applies, so every returned slot holds a
// resolvable user. Users without tasks in the window yield no row. Ties keep
// store order.
func (r *TaskRepository) Leaderboard(ctx context.Context, since time.Time, limit int) ([]LeaderboardRow, error) {
	var aggs []struct {
		UserID          string
		Email           string
		FirstName       string
		LastName        string
		ProfileImageURL string
		TelegramChatID  int64
		TotalTasks      int64
		CompletedTasks  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.user_id, users.email, users.first_name, users.last_name, users.profile_image_url, users.telegram_chat_id, "+
			"COUNT(tasks.id) AS total_tasks, COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS completed_tasks", model.StatusCompleted).
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("tasks.created_at >= ?", since).
		Group("tasks.user_id").
		Order("completed_tasks DESC").
		Limit(limit).
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	if len(aggs) == 0 {
		return nil, nil
	}

	rows := make([]LeaderboardRow, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, LeaderboardRow{
			User: model.User{
				ID:              agg.UserID,
				Email:           agg.Email,
				FirstName:       agg.FirstName,
				LastName:        agg.LastName,
				ProfileImageURL: agg.ProfileImageURL,
				TelegramChatID:  agg.TelegramChatID,
			},
			TotalTasks:     agg.TotalTasks,
			CompletedTasks: agg.CompletedTasks,
		})
	}
	return rows, nil
}
