// Package repository is the persistence gateway: one method per access
// pattern the service layer needs, over gorm. Lookups return (nil, nil) when
// the row does not exist; only real failures are errors.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
)

// Repository defines the storage operations used by the services
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	ListRestaurantsByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id uint, patch map[string]any) (*models.Restaurant, error)

	CreateMenu(ctx context.Context, menu *models.Menu) error
	GetMenuByID(ctx context.Context, id uint) (*models.MenuWithItems, error)
	ListMenusByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuWithItems, error)
	UpdateMenu(ctx context.Context, id uint, patch map[string]any) (*models.MenuWithItems, error)

	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uint, patch map[string]any) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uint) error

	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// Store implements Repository with gorm
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// first loads one row into dest and reports whether it was found.
func (s *Store) first(ctx context.Context, op string, dest any, query string, args ...any) (bool, error) {
	err := s.db.WithContext(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(op, err)
	}
	return true, nil
}

// classify maps a write failure to a conflict or storage error.
func classify(op, conflictMsg string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.KindConflict, conflictMsg, err)
	}
	return apperr.Storage(op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
