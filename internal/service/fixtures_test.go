package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pageza/menuqr/backend/internal/ingest"
	"github.com/pageza/menuqr/backend/internal/logging"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/testhelpers"
	"github.com/pageza/menuqr/backend/internal/types"
)

const testSecret = "test-secret"

type fixture struct {
	repo        *repository.Store
	mr          *miniredis.Miniredis
	redis       *redis.Client
	provider    *testhelpers.FakeProvider
	auth        *AuthService
	restaurants *RestaurantService
	menus       *MenuService
	ingest      *IngestService
	chat        *ChatService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewStore(testhelpers.SetupSQLite(t))
	mr, rdb := testhelpers.SetupRedis(t)
	fake := testhelpers.NewFakeProvider()
	log := logging.Component(logging.Discard(), "test")

	return &fixture{
		repo:        repo,
		mr:          mr,
		redis:       rdb,
		provider:    fake,
		auth:        NewAuthService(repo, rdb, testSecret, time.Hour, log),
		restaurants: NewRestaurantService(repo, "https://menu.example.com/", log),
		menus:       NewMenuService(repo, log),
		ingest:      NewIngestService(repo, ingest.NewPipeline(fake, log), ingest.NewDraftStore(rdb), nil, log),
		chat:        NewChatService(repo, fake, log),
	}
}

func (f *fixture) owner(t *testing.T, username string) *models.User {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), types.RegisterRequest{Username: username, Password: "secret"})
	require.NoError(t, err)
	return &resp.User
}

func (f *fixture) restaurant(t *testing.T, ownerID uint, slug string) *models.Restaurant {
	t.Helper()
	r, err := f.restaurants.Create(context.Background(), ownerID, types.CreateRestaurantRequest{
		Name: "Test Bistro",
		Slug: slug,
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) menu(t *testing.T, ownerID, restaurantID uint, name string) *models.MenuWithItems {
	t.Helper()
	m, err := f.menus.CreateMenu(context.Background(), ownerID, types.CreateMenuRequest{
		RestaurantID: restaurantID,
		Name:         name,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) item(t *testing.T, ownerID, menuID uint, draft types.ItemDraft) *models.MenuItem {
	t.Helper()
	item, err := f.menus.CreateItem(context.Background(), ownerID, types.CreateMenuItemRequest{
		MenuID:    menuID,
		ItemDraft: draft,
	})
	require.NoError(t, err)
	return item
}

func strPtr(s string) *string { return &s }
