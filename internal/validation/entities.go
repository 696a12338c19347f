package validation

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/types"
)

// ValidateUserCreate checks a registration and returns the user to persist
// with its password already hashed. Username uniqueness is a storage concern.
func ValidateUserCreate(req types.RegisterRequest) (*models.User, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords over 72 bytes
		return nil, apperr.Invalid("password", "is too long")
	}
	return &models.User{
		Username: req.Username,
		Password: string(hash),
	}, nil
}

// ValidateRestaurantCreate checks a new restaurant. A missing or non-positive
// table count becomes the default of 10.
func ValidateRestaurantCreate(req types.CreateRestaurantRequest, ownerID uint) (*models.Restaurant, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	tables := models.DefaultTableCount
	if req.TableCount != nil && *req.TableCount > 0 {
		tables = *req.TableCount
	}
	return &models.Restaurant{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(req.Name),
		Slug:           req.Slug,
		Address:        optional(req.Address),
		ContactNumber:  optional(req.ContactNumber),
		WhatsappNumber: optional(req.WhatsappNumber),
		CuisineType:    optional(req.CuisineType),
		Description:    optional(req.Description),
		CoverImage:     optional(req.CoverImage),
		TableCount:     tables,
	}, nil
}

// ValidateRestaurantUpdate returns the column patch for a restaurant update.
func ValidateRestaurantUpdate(req types.UpdateRestaurantRequest) (map[string]any, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		patch["slug"] = *req.Slug
	}
	setOptional(patch, "address", req.Address)
	setOptional(patch, "contact_number", req.ContactNumber)
	setOptional(patch, "whatsapp_number", req.WhatsappNumber)
	setOptional(patch, "cuisine_type", req.CuisineType)
	setOptional(patch, "description", req.Description)
	setOptional(patch, "cover_image", req.CoverImage)
	if req.TableCount != nil {
		patch["table_count"] = *req.TableCount
	}
	return patch, nil
}

// ValidateMenuCreate checks a new menu; isActive defaults to true.
func ValidateMenuCreate(req types.CreateMenuRequest) (*models.Menu, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.Menu{
		RestaurantID: req.RestaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  optional(req.Description),
		IsActive:     models.Bool(active),
	}, nil
}

func ValidateMenuUpdate(req types.UpdateMenuRequest) (map[string]any, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	setOptional(patch, "description", req.Description)
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	return patch, nil
}

// ValidateItemDraft checks one item draft and returns the item it describes,
// without a menu id. Manual entry and both ingestion producers go through here.
func ValidateItemDraft(d types.ItemDraft) (*models.MenuItem, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	return itemFromDraft(d)
}

// ValidateMenuItemCreate checks a manual item create.
func ValidateMenuItemCreate(req types.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	item, err := itemFromDraft(req.ItemDraft)
	if err != nil {
		return nil, err
	}
	item.MenuID = req.MenuID
	return item, nil
}

// ValidateMenuItemUpdate returns the column patch for an item. An empty patch
// is valid and changes nothing.
func ValidateMenuItemUpdate(req types.UpdateMenuItemRequest) (map[string]any, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	setOptional(patch, "description", req.Description)
	if req.Price != nil {
		price, minor, err := NormalizePrice(*req.Price)
		if err != nil {
			return nil, apperr.Invalid("price", "must be a non-negative amount with at most two decimals")
		}
		patch["price"] = price
		patch["price_minor"] = minor
	}
	if req.Category != nil {
		patch["category"] = strings.TrimSpace(*req.Category)
	}
	setOptional(patch, "image_url", req.ImageURL)
	setBool(patch, "is_available", req.IsAvailable)
	setBool(patch, "is_bestseller", req.IsBestseller)
	setBool(patch, "is_chefs_pick", req.IsChefsPick)
	setBool(patch, "is_todays_special", req.IsTodaysSpecial)
	return patch, nil
}

func itemFromDraft(d types.ItemDraft) (*models.MenuItem, error) {
	price, minor, err := NormalizePrice(d.Price)
	if err != nil {
		return nil, apperr.Invalid("price", fmt.Sprintf("%q is not a valid amount", d.Price))
	}
	return &models.MenuItem{
		Name:            strings.TrimSpace(d.Name),
		Description:     optional(d.Description),
		Price:           price,
		PriceMinor:      minor,
		Category:        strings.TrimSpace(d.Category),
		ImageURL:        optional(d.ImageURL),
		IsAvailable:     models.Bool(boolOr(d.IsAvailable, true)),
		IsBestseller:    boolOr(d.IsBestseller, false),
		IsChefsPick:     boolOr(d.IsChefsPick, false),
		IsTodaysSpecial: boolOr(d.IsTodaysSpecial, false),
	}, nil
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	return models.StringPtr(strings.TrimSpace(*s))
}

// setOptional records a nullable text column; an empty string clears it.
func setOptional(patch map[string]any, column string, s *string) {
	if s == nil {
		return
	}
	if v := optional(s); v != nil {
		patch[column] = *v
	} else {
		patch[column] = nil
	}
}

func setBool(patch map[string]any, column string, b *bool) {
	if b != nil {
		patch[column] = *b
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
