package repository

import (
	"context"
	"errors"

	"elearning-notifier/internal/domain"
)

// ErrUserNotFound is returned when no users record exists for the id.
var ErrUserNotFound = errors.New("user not found")

type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
}
