package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskflow/internal/model"
)

// ProfileInput carries the identity claims forwarded by the auth proxy.
type ProfileInput struct {
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// UserService mirrors auth-provider profiles into the local users table.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// UpsertUser refreshes the stored profile from the proxy's claims,
// creating the row on first sight of the user.
func (s *UserService) UpsertUser(ctx context.Context, userID string, input ProfileInput) (*model.User, error) {
	if userID == "" {
		return nil, ErrInvalidArgs
	}

	user := model.User{
		ID:              userID,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		ProfileImageURL: input.ProfileImageURL,
	}
	if err := s.users.Upsert(ctx, &user); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

// LinkTelegramChat enables the daily digest for the user.
func (s *UserService) LinkTelegramChat(ctx context.Context, userID string, chatID int64) error {
	if userID == "" || chatID == 0 {
		return ErrInvalidArgs
	}
	err := s.users.LinkTelegramChat(ctx, userID, chatID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("link telegram chat: %w", err)
	}
}
