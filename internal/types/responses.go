package types

import (
	"time"

	"github.com/pageza/menuqr/backend/internal/models"
)

// ErrorResponse is the body of every rejected request
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// MenuDraft is an ingestion result held for review before it is committed.
type MenuDraft struct {
	ID           string      `json:"id"`
	RestaurantID uint        `json:"restaurantId"`
	OwnerID      uint        `json:"-"`
	Source       string      `json:"source"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Items        []ItemDraft `json:"items"`
	Dropped      int         `json:"dropped"`
	SourceKey    string      `json:"sourceKey,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// TableLink is the public URL encoded into one table's QR code
type TableLink struct {
	Table int    `json:"table"`
	URL   string `json:"url"`
}

// PublicRestaurant is the customer-facing projection of a restaurant
type PublicRestaurant struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Address        *string `json:"address"`
	ContactNumber  *string `json:"contactNumber"`
	WhatsappNumber *string `json:"whatsappNumber"`
	CuisineType    *string `json:"cuisineType"`
	Description    *string `json:"description"`
	CoverImage     *string `json:"coverImage"`
	TableCount     int     `json:"tableCount"`
}

// CategoryGroup holds the visible items of one category in display order
type CategoryGroup struct {
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// MenuSummary lets the public page offer a menu switcher
type MenuSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PublicMenu is the visible part of one active menu
type PublicMenu struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Items       []models.MenuItem `json:"items"`
	Categories  []CategoryGroup   `json:"categories"`
}

// PublicMenuView is everything the public menu page needs in one response
type PublicMenuView struct {
	Restaurant PublicRestaurant `json:"restaurant"`
	Menus      []MenuSummary    `json:"menus"`
	Menu       *PublicMenu      `json:"menu"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
