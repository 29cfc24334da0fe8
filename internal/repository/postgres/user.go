package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"elearning-notifier/internal/domain"
	"elearning-notifier/internal/logger"
	"elearning-notifier/internal/repository"

	_ "github.com/lib/pq"
)

type userProfileRepository struct {
	db *sql.DB
}

func NewUserProfileRepository(db *sql.DB) repository.UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT id, email, full_name, username FROM users WHERE id = $1`
	logger.DatabaseCall("users.get_by_id", query, "user_id", id)

	u := &domain.UserProfile{}
	var email, fullName, username sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &email, &fullName, &username)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("users.get_by_id", false, nil, "user_id", id)
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		logger.DatabaseResult("users.get_by_id", false, err, "user_id", id)
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	logger.DatabaseResult("users.get_by_id", true, nil, "user_id", id)

	u.Email = email.String
	u.FullName = fullName.String
	u.Username = username.String
	return u, nil
}
