package types

// RegisterRequest is the body for creating an owner account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginRequest is the body for obtaining a token
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateRestaurantRequest represents the request body for creating a restaurant.
// Slug is derived from Name when omitted.
type CreateRestaurantRequest struct {
	Name           string  `json:"name" validate:"required,notblank,max=120"`
	Slug           string  `json:"slug" validate:"required,slug,max=128"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	ContactNumber  *string `json:"contactNumber" validate:"omitempty,max=32"`
	WhatsappNumber *string `json:"whatsappNumber" validate:"omitempty,max=32"`
	CuisineType    *string `json:"cuisineType" validate:"omitempty,max=64"`
	Description    *string `json:"description" validate:"omitempty,max=1000"`
	CoverImage     *string `json:"coverImage" validate:"omitempty,max=2048"`
	TableCount     *int    `json:"tableCount" validate:"omitempty,max=500"`
}

// UpdateRestaurantRequest is a partial patch; nil fields are left unchanged
type UpdateRestaurantRequest struct {
	Name           *string `json:"name" validate:"omitnil,notblank,max=120"`
	Slug           *string `json:"slug" validate:"omitnil,slug,max=128"`
	Address        *string `json:"address" validate:"omitnil,max=255"`
	ContactNumber  *string `json:"contactNumber" validate:"omitnil,max=32"`
	WhatsappNumber *string `json:"whatsappNumber" validate:"omitnil,max=32"`
	CuisineType    *string `json:"cuisineType" validate:"omitnil,max=64"`
	Description    *string `json:"description" validate:"omitnil,max=1000"`
	CoverImage     *string `json:"coverImage" validate:"omitnil,max=2048"`
	TableCount     *int    `json:"tableCount" validate:"omitnil,min=1,max=500"`
}

// CreateMenuRequest represents the request body for creating a menu
type CreateMenuRequest struct {
	RestaurantID uint    `json:"restaurantId" validate:"required"`
	Name         string  `json:"name" validate:"required,notblank,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	IsActive     *bool   `json:"isActive"`
}

// UpdateMenuRequest is a partial patch of a menu's own fields
type UpdateMenuRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=120"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	IsActive    *bool   `json:"isActive"`
}

// ItemDraft is the item shape shared by manual entry and both ingestion
// producers: a menu item create without the menu id.
type ItemDraft struct {
	Name            string  `json:"name" validate:"required,notblank,max=120"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Price           string  `json:"price" validate:"required,price"`
	Category        string  `json:"category" validate:"required,notblank,max=64"`
	ImageURL        *string `json:"imageUrl,omitempty" validate:"omitempty,max=2048"`
	IsAvailable     *bool   `json:"isAvailable,omitempty"`
	IsBestseller    *bool   `json:"isBestseller,omitempty"`
	IsChefsPick     *bool   `json:"isChefsPick,omitempty"`
	IsTodaysSpecial *bool   `json:"isTodaysSpecial,omitempty"`
}

// CreateMenuItemRequest represents the request body for creating a menu item
type CreateMenuItemRequest struct {
	MenuID uint `json:"menuId" validate:"required"`
	ItemDraft
}

// UpdateMenuItemRequest is a partial patch; nil fields are left unchanged
type UpdateMenuItemRequest struct {
	Name            *string `json:"name" validate:"omitnil,notblank,max=120"`
	Description     *string `json:"description" validate:"omitnil,max=500"`
	Price           *string `json:"price" validate:"omitnil,price"`
	Category        *string `json:"category" validate:"omitnil,notblank,max=64"`
	ImageURL        *string `json:"imageUrl" validate:"omitnil,max=2048"`
	IsAvailable     *bool   `json:"isAvailable"`
	IsBestseller    *bool   `json:"isBestseller"`
	IsChefsPick     *bool   `json:"isChefsPick"`
	IsTodaysSpecial *bool   `json:"isTodaysSpecial"`
}

// GenerateMenuRequest asks the provider to draft a menu from a cuisine prompt
type GenerateMenuRequest struct {
	RestaurantID uint   `json:"restaurantId" validate:"required"`
	Cuisine      string `json:"cuisine" validate:"required,notblank,max=200"`
	Tone         string `json:"tone" validate:"max=100"`
}

// CommitDraftRequest optionally overrides the stored draft before it is persisted
type CommitDraftRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Items       []ItemDraft `json:"items"`
}

// ChatTurn is one prior message in a customer conversation
type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"max=2000"`
}

// ChatRequest represents a customer question about a restaurant's menu
type ChatRequest struct {
	Message string     `json:"message" validate:"required,notblank,max=1000"`
	History []ChatTurn `json:"history" validate:"max=50,dive"`
}
