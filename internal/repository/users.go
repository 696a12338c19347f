package repository

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	return classify("create user", "username is already taken", err)
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	found, err := s.first(ctx, "get user", &user, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername matches the username exactly; case matters.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	found, err := s.first(ctx, "get user", &user, "username = ?", username)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}
