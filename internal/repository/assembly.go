package repository

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
)

// assemble attaches every persisted item to its menu in one query. Output
// keeps the order of menus and, within each menu, item position order. Items
// are never filtered here.
func (s *Store) assemble(ctx context.Context, menus []models.Menu) ([]models.MenuWithItems, error) {
	composites := make([]models.MenuWithItems, len(menus))
	if len(menus) == 0 {
		return composites, nil
	}

	ids := make([]uint, len(menus))
	index := make(map[uint]int, len(menus))
	for i, m := range menus {
		if m.IsActive == nil {
			m.IsActive = models.Bool(true)
		}
		composites[i] = models.MenuWithItems{Menu: m, Items: []models.MenuItem{}}
		ids[i] = m.ID
		index[m.ID] = i
	}

	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Where("menu_id IN ?", ids).
		Order("menu_id, position, id").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Storage("list menu items", err)
	}

	for _, item := range items {
		// rows written before the column existed read as available
		if item.IsAvailable == nil {
			item.IsAvailable = models.Bool(true)
		}
		i := index[item.MenuID]
		composites[i].Items = append(composites[i].Items, item)
	}
	return composites, nil
}
