package repository

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
)

// CreateMenuItem appends the item after the menu's existing items unless a
// position is already set.
func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	db := s.db.WithContext(ctx)
	if item.Position == 0 {
		var next int
		err := db.Model(&models.MenuItem{}).
			Where("menu_id = ?", item.MenuID).
			Select("COALESCE(MAX(position), 0) + 1").
			Scan(&next).Error
		if err != nil {
			return apperr.Storage("create menu item", err)
		}
		item.Position = next
	}
	if err := db.Create(item).Error; err != nil {
		return apperr.Storage("create menu item", err)
	}
	return nil
}

func (s *Store) GetMenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	found, err := s.first(ctx, "get menu item", &item, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	if item.IsAvailable == nil {
		item.IsAvailable = models.Bool(true)
	}
	return &item, nil
}

// UpdateMenuItem sets only the columns present in patch, so concurrent
// patches to different fields do not overwrite each other.
func (s *Store) UpdateMenuItem(ctx context.Context, id uint, patch map[string]any) (*models.MenuItem, error) {
	if len(patch) > 0 {
		err := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(patch).Error
		if err != nil {
			return nil, apperr.Storage("update menu item", err)
		}
	}
	return s.GetMenuItemByID(ctx, id)
}

// DeleteMenuItem succeeds whether or not the item exists.
func (s *Store) DeleteMenuItem(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error; err != nil {
		return apperr.Storage("delete menu item", err)
	}
	return nil
}
