package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/policy"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

// MenuService covers owner menu management and the public menu read path.
type MenuService struct {
	repo repository.Repository
	log  *logrus.Entry
}

func NewMenuService(repo repository.Repository, log *logrus.Entry) *MenuService {
	return &MenuService{repo: repo, log: log}
}

func (s *MenuService) CreateMenu(ctx context.Context, ownerID uint, req types.CreateMenuRequest) (*models.MenuWithItems, error) {
	menu, err := validation.ValidateMenuCreate(req)
	if err != nil {
		return nil, err
	}
	if _, err := ownedRestaurant(ctx, s.repo, ownerID, menu.RestaurantID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"menu_id":       menu.ID,
		"restaurant_id": menu.RestaurantID,
	}).Info("created menu")
	return &models.MenuWithItems{Menu: *menu, Items: []models.MenuItem{}}, nil
}

func (s *MenuService) GetMenu(ctx context.Context, ownerID, id uint) (*models.MenuWithItems, error) {
	return ownedMenu(ctx, s.repo, ownerID, id)
}

// ListMenus returns every menu of the restaurant, inactive ones included.
func (s *MenuService) ListMenus(ctx context.Context, ownerID, restaurantID uint) ([]models.MenuWithItems, error) {
	if _, err := ownedRestaurant(ctx, s.repo, ownerID, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListMenusByRestaurant(ctx, restaurantID)
}

func (s *MenuService) UpdateMenu(ctx context.Context, ownerID, id uint, req types.UpdateMenuRequest) (*models.MenuWithItems, error) {
	if _, err := ownedMenu(ctx, s.repo, ownerID, id); err != nil {
		return nil, err
	}
	patch, err := validation.ValidateMenuUpdate(req)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateMenu(ctx, id, patch)
}

func (s *MenuService) CreateItem(ctx context.Context, ownerID uint, req types.CreateMenuItemRequest) (*models.MenuItem, error) {
	item, err := validation.ValidateMenuItemCreate(req)
	if err != nil {
		return nil, err
	}
	if _, err := ownedMenu(ctx, s.repo, ownerID, item.MenuID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, ownerID, id uint, req types.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.ownedItem(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errItemNotFound
	}

	patch, err := validation.ValidateMenuItemUpdate(req)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateMenuItem(ctx, id, patch)
}

// DeleteItem removes an item. Deleting an item that does not exist succeeds.
func (s *MenuService) DeleteItem(ctx context.Context, ownerID, id uint) error {
	item, err := s.ownedItem(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	return s.repo.DeleteMenuItem(ctx, id)
}

// PublicMenu is the customer view of a restaurant: its active menus and the
// visible items of the requested menu, or of the first active menu when
// menuID is zero. A restaurant without active menus has a nil Menu.
func (s *MenuService) PublicMenu(ctx context.Context, slug string, menuID uint) (*types.PublicMenuView, error) {
	restaurant, err := s.repo.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, errRestaurantNotFound
	}

	menus, err := s.repo.ListMenusByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	view := &types.PublicMenuView{
		Restaurant: policy.PublicRestaurant(*restaurant),
		Menus:      []types.MenuSummary{},
	}
	for _, m := range policy.ActiveMenus(menus) {
		view.Menus = append(view.Menus, types.MenuSummary{ID: m.ID, Name: m.Name})
	}
	selected := policy.SelectMenu(menus, menuID)
	if selected == nil && menuID != 0 {
		return nil, errMenuNotFound
	}
	if selected != nil {
		public := policy.PublicMenu(*selected)
		view.Menu = &public
	}
	return view, nil
}

// ownedItem returns nil without error when the item does not exist.
func (s *MenuService) ownedItem(ctx context.Context, ownerID, id uint) (*models.MenuItem, error) {
	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	if _, err := ownedMenu(ctx, s.repo, ownerID, item.MenuID); err != nil {
		return nil, err
	}
	return item, nil
}
