package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

const defaultTaskListLimit = 50

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	CategoryID  *string
	Priority    string
	DueDate     *time.Time
}

// TaskPatch carries partial updates; nil fields are left untouched.
// ClearCategory detaches the task from its category.
type TaskPatch struct {
	Title         *string
	Description   *string
	CategoryID    *string
	ClearCategory bool
	Priority      *string
	Status        *string
	DueDate       *time.Time
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks      TaskStore
	categories CategoryStore

	now func() time.Time
}

func NewTaskService(tasks TaskStore, categories CategoryStore) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, userID string, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if userID == "" || title == "" {
		return nil, ErrInvalidArgs
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, ErrInvalidArgs
	}

	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		Status:      model.StatusPending,
		DueDate:     input.DueDate,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	if userID == "" || limit < 0 {
		return nil, ErrInvalidArgs
	}
	if limit == 0 {
		limit = defaultTaskListLimit
	}
	return s.tasks.ListByUser(ctx, userID, limit)
}

// TasksByDate returns the user's tasks created on the given local day.
func (s *TaskService) TasksByDate(ctx context.Context, userID string, day time.Time) ([]model.Task, error) {
	if userID == "" {
		return nil, ErrInvalidArgs
	}
	from := startOfDay(day)
	return s.tasks.ListByDate(ctx, userID, from, from.Add(24*time.Hour))
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrTaskNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// UpdateTask applies a partial update. Status writes keep the invariant
// that CompletedAt is set exactly when the status is "completed".
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, patch TaskPatch) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrInvalidArgs
		}
		updates["title"] = title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return nil, ErrInvalidArgs
		}
		updates["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}

	switch {
	case patch.ClearCategory:
		updates["category_id"] = nil
	case patch.CategoryID != nil:
		if err := s.ensureCategory(ctx, userID, *patch.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *patch.CategoryID
	}

	if patch.Status != nil {
		status := *patch.Status
		if !model.ValidStatus(status) {
			return nil, ErrInvalidArgs
		}
		updates["status"] = status
		if status == model.StatusCompleted {
			if task.CompletedAt == nil {
				updates["completed_at"] = s.now()
			}
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) == 0 {
		return nil, ErrInvalidArgs
	}
	updates["updated_at"] = s.now()

	if err := s.tasks.Update(ctx, task, updates); err != nil {
		return nil, err
	}
	return s.GetTask(ctx, userID, taskID)
}

// CompleteTask marks a task as done, stamping the completion time.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.MarkCompleted(ctx, task, s.now()); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := s.GetTask(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, userID, taskID)
}

func (s *TaskService) ensureCategory(ctx context.Context, userID, categoryID string) error {
	_, err := s.categories.FindByID(ctx, userID, categoryID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCategoryNotFound
	default:
		return fmt.Errorf("find category: %w", err)
	}
}
