package repository

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
)

const slugTaken = "slug is already in use"

func (s *Store) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	err := s.db.WithContext(ctx).Create(restaurant).Error
	return classify("create restaurant", slugTaken, err)
}

func (s *Store) GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	found, err := s.first(ctx, "get restaurant", &r, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	var r models.Restaurant
	found, err := s.first(ctx, "get restaurant", &r, "slug = ?", slug)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

// ListRestaurantsByOwner never returns nil.
func (s *Store) ListRestaurantsByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&restaurants).Error
	if err != nil {
		return nil, apperr.Storage("list restaurants", err)
	}
	return restaurants, nil
}

func (s *Store) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	if err := s.db.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, apperr.Storage("list restaurants", err)
	}
	return restaurants, nil
}

// UpdateRestaurant applies only the columns in patch and returns the fresh row,
// or nil if the restaurant does not exist.
func (s *Store) UpdateRestaurant(ctx context.Context, id uint, patch map[string]any) (*models.Restaurant, error) {
	if len(patch) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(patch).Error
		if err != nil {
			return nil, classify("update restaurant", slugTaken, err)
		}
	}
	return s.GetRestaurantByID(ctx, id)
}
