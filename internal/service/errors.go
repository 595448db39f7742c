package service

import "errors"

// Failures surfaced to callers. Store-level errors that are none of these
// propagate wrapped and unretried.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidArgs      = errors.New("invalid arguments")
)
