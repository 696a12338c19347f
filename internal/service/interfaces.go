package service

import (
	"context"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	Me(ctx context.Context, userID uint) (*models.User, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// IRestaurantService defines the interface for restaurant operations
type IRestaurantService interface {
	Create(ctx context.Context, ownerID uint, req types.CreateRestaurantRequest) (*models.Restaurant, error)
	ListMine(ctx context.Context, ownerID uint) ([]models.Restaurant, error)
	Get(ctx context.Context, ownerID, id uint) (*models.Restaurant, error)
	Update(ctx context.Context, ownerID, id uint, req types.UpdateRestaurantRequest) (*models.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*types.PublicRestaurant, error)
	ListAll(ctx context.Context) ([]types.PublicRestaurant, error)
	TableLinks(ctx context.Context, ownerID, id uint) ([]types.TableLink, error)
}

// IMenuService defines the interface for menu and menu item operations
type IMenuService interface {
	CreateMenu(ctx context.Context, ownerID uint, req types.CreateMenuRequest) (*models.MenuWithItems, error)
	GetMenu(ctx context.Context, ownerID, id uint) (*models.MenuWithItems, error)
	ListMenus(ctx context.Context, ownerID, restaurantID uint) ([]models.MenuWithItems, error)
	UpdateMenu(ctx context.Context, ownerID, id uint, req types.UpdateMenuRequest) (*models.MenuWithItems, error)
	CreateItem(ctx context.Context, ownerID uint, req types.CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, ownerID, id uint, req types.UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, ownerID, id uint) error
	PublicMenu(ctx context.Context, slug string, menuID uint) (*types.PublicMenuView, error)
}

// IIngestService defines the interface for menu ingestion and draft review
type IIngestService interface {
	Generate(ctx context.Context, ownerID uint, req types.GenerateMenuRequest) (*types.MenuDraft, error)
	Upload(ctx context.Context, ownerID, restaurantID uint, file Upload) (*types.MenuDraft, error)
	GetDraft(ctx context.Context, ownerID uint, id string) (*types.MenuDraft, error)
	DiscardDraft(ctx context.Context, ownerID uint, id string) error
	CommitDraft(ctx context.Context, ownerID uint, id string, req types.CommitDraftRequest) (*models.MenuWithItems, error)
}

// IChatService defines the interface for the customer menu assistant
type IChatService interface {
	Reply(ctx context.Context, restaurantID uint, req types.ChatRequest) (*types.ChatResponse, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IRestaurantService = (*RestaurantService)(nil)
	_ IMenuService       = (*MenuService)(nil)
	_ IIngestService     = (*IngestService)(nil)
	_ IChatService       = (*ChatService)(nil)
)
