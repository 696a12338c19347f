package repository

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
)

// CreateMenu appends the menu after the restaurant's existing menus unless a
// position is already set.
func (s *Store) CreateMenu(ctx context.Context, menu *models.Menu) error {
	db := s.db.WithContext(ctx)
	if menu.Position == 0 {
		var next int
		err := db.Model(&models.Menu{}).
			Where("restaurant_id = ?", menu.RestaurantID).
			Select("COALESCE(MAX(position), 0) + 1").
			Scan(&next).Error
		if err != nil {
			return apperr.Storage("create menu", err)
		}
		menu.Position = next
	}
	if err := db.Create(menu).Error; err != nil {
		return apperr.Storage("create menu", err)
	}
	return nil
}

// GetMenuByID returns the menu with all of its items, or nil.
func (s *Store) GetMenuByID(ctx context.Context, id uint) (*models.MenuWithItems, error) {
	var menu models.Menu
	found, err := s.first(ctx, "get menu", &menu, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	composites, err := s.assemble(ctx, []models.Menu{menu})
	if err != nil {
		return nil, err
	}
	return &composites[0], nil
}

// ListMenusByRestaurant returns every menu of a restaurant, active or not,
// ordered by position.
func (s *Store) ListMenusByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuWithItems, error) {
	var menus []models.Menu
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("position, id").
		Find(&menus).Error
	if err != nil {
		return nil, apperr.Storage("list menus", err)
	}
	return s.assemble(ctx, menus)
}

func (s *Store) UpdateMenu(ctx context.Context, id uint, patch map[string]any) (*models.MenuWithItems, error) {
	if len(patch) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Menu{}).Where("id = ?", id).Updates(patch).Error
		if err != nil {
			return nil, apperr.Storage("update menu", err)
		}
	}
	return s.GetMenuByID(ctx, id)
}
