package service

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/repository"
)

var (
	errRestaurantNotFound = apperr.New(apperr.KindNotFound, "restaurant not found")
	errMenuNotFound       = apperr.New(apperr.KindNotFound, "menu not found")
	errItemNotFound       = apperr.New(apperr.KindNotFound, "menu item not found")
	errDraftNotFound      = apperr.New(apperr.KindNotFound, "draft not found or expired")
	errNotOwner           = apperr.New(apperr.KindForbidden, "you do not own this restaurant")
)

// ownedRestaurant loads a restaurant and checks that ownerID owns it.
func ownedRestaurant(ctx context.Context, repo repository.Repository, ownerID, id uint) (*models.Restaurant, error) {
	restaurant, err := repo.GetRestaurantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, errRestaurantNotFound
	}
	if restaurant.OwnerID != ownerID {
		return nil, errNotOwner
	}
	return restaurant, nil
}

// ownedMenu loads a menu with its items and checks ownership through its restaurant.
func ownedMenu(ctx context.Context, repo repository.Repository, ownerID, id uint) (*models.MenuWithItems, error) {
	menu, err := repo.GetMenuByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, errMenuNotFound
	}
	if _, err := ownedRestaurant(ctx, repo, ownerID, menu.RestaurantID); err != nil {
		return nil, err
	}
	return menu, nil
}
