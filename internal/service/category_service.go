package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// CategoryPatch carries partial category updates; nil fields are untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, ErrInvalidArgs
	}

	category := model.Category{UserID: userID, Name: name, Color: color}
	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	if userID == "" {
		return nil, ErrInvalidArgs
	}
	return s.categories.ListByUser(ctx, userID)
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, id string) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, userID, id)
	switch {
	case err == nil:
		return category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrCategoryNotFound
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id string, patch CategoryPatch) (*model.Category, error) {
	category, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrInvalidArgs
		}
		updates["name"] = name
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if len(updates) == 0 {
		return nil, ErrInvalidArgs
	}

	if err := s.categories.Update(ctx, category, updates); err != nil {
		return nil, err
	}
	return s.GetCategory(ctx, userID, id)
}

// DeleteCategory removes the category; its tasks survive with the category
// reference cleared.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id string) error {
	if _, err := s.GetCategory(ctx, userID, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, userID, id)
}
