package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/config"
	"github.com/pageza/menuqr/backend/internal/database"
	"github.com/pageza/menuqr/backend/internal/logging"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/service"
	"github.com/pageza/menuqr/backend/internal/types"
)

const (
	demoUsername = "admin"
	demoPassword = "password"
	demoSlug     = "demo-bistro"
)

type demoItem struct {
	name, description, price, category string
	bestseller, chefsPick, special     bool
}

var demoItems = []demoItem{
	{name: "Classic Hummus", description: "Chickpeas, tahini, lemon and olive oil with warm pita", price: "32.00", category: "Appetizer", bestseller: true},
	{name: "Smoky Moutabal", description: "Charred eggplant with tahini and pomegranate", price: "34.00", category: "Appetizer"},
	{name: "Falafel Plate", description: "Crisp falafel with tahini sauce and pickles", price: "36.00", category: "Appetizer"},
	{name: "Halloumi Bites", description: "Grilled halloumi with honey and za'atar", price: "42.00", category: "Appetizer", chefsPick: true},
	{name: "Fattoush Salad", description: "Garden vegetables, sumac and toasted bread", price: "38.00", category: "Appetizer"},
	{name: "Lamb Kofta", description: "Spiced minced lamb skewers with grilled tomato", price: "78.00", category: "Main", bestseller: true},
	{name: "Chicken Shawarma Platter", description: "Marinated chicken, garlic toum and fries", price: "64.00", category: "Main"},
	{name: "Grilled Sea Bass", description: "Whole sea bass with lemon and herbs", price: "115.00", category: "Main", chefsPick: true},
	{name: "Mixed Grill", description: "Kofta, shish tawook and lamb chops for two", price: "165.00", category: "Main", special: true},
	{name: "Vegetable Moussaka", description: "Layered eggplant, potato and bechamel", price: "58.00", category: "Main"},
	{name: "Kunafa", description: "Warm cheese pastry with orange blossom syrup", price: "38.00", category: "Dessert", bestseller: true},
	{name: "Baklava Selection", description: "Pistachio and walnut pastries", price: "32.00", category: "Dessert"},
	{name: "Fresh Mint Lemonade", description: "Blended lemon and mint", price: "24.00", category: "Drink"},
	{name: "Turkish Coffee", price: "18.00", category: "Drink"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.Environment.Strict())

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(context.Background(), repository.NewStore(db), cfg, log); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func seed(ctx context.Context, repo *repository.Store, cfg *config.Config, log *logrus.Logger) error {
	existing, err := repo.GetRestaurantBySlug(ctx, demoSlug)
	if err != nil {
		return err
	}
	if existing != nil {
		log.WithField("slug", demoSlug).Info("Demo restaurant already exists, nothing to do")
		return nil
	}

	owner, err := repo.GetUserByUsername(ctx, demoUsername)
	if err != nil {
		return err
	}
	ownerID := uint(0)
	if owner != nil {
		ownerID = owner.ID
	} else {
		auth := service.NewAuthService(repo, nil, cfg.JWTSecret, cfg.TokenTTL, logging.Component(log, "auth"))
		resp, err := auth.Register(ctx, types.RegisterRequest{Username: demoUsername, Password: demoPassword})
		if err != nil {
			return err
		}
		ownerID = resp.User.ID
	}

	restaurants := service.NewRestaurantService(repo, cfg.PublicBaseURL, logging.Component(log, "restaurants"))
	tables := 12
	restaurant, err := restaurants.Create(ctx, ownerID, types.CreateRestaurantRequest{
		Name:        "The Golden Fork",
		Slug:        demoSlug,
		Address:     ptr("Downtown Dubai, UAE"),
		CuisineType: ptr("Mediterranean"),
		Description: ptr("Mezze, charcoal grills and desserts from around the Mediterranean."),
		TableCount:  &tables,
	})
	if err != nil {
		return err
	}

	menus := service.NewMenuService(repo, logging.Component(log, "menus"))
	active := true
	menu, err := menus.CreateMenu(ctx, ownerID, types.CreateMenuRequest{
		RestaurantID: restaurant.ID,
		Name:         "Signature Menu",
		Description:  ptr("Our everyday menu"),
		IsActive:     &active,
	})
	if err != nil {
		return err
	}

	for _, it := range demoItems {
		draft := types.ItemDraft{
			Name:            it.name,
			Price:           it.price,
			Category:        it.category,
			IsBestseller:    &it.bestseller,
			IsChefsPick:     &it.chefsPick,
			IsTodaysSpecial: &it.special,
		}
		if it.description != "" {
			draft.Description = ptr(it.description)
		}
		if _, err := menus.CreateItem(ctx, ownerID, types.CreateMenuItemRequest{MenuID: menu.ID, ItemDraft: draft}); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"slug":  restaurant.Slug,
		"menu":  menu.ID,
		"items": len(demoItems),
		"user":  demoUsername,
	}).Info("Seeded demo restaurant")
	return nil
}

func ptr(s string) *string { return &s }
