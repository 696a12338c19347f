package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, field, appErr.Field)
}

func TestValidateUserCreate(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		user, err := ValidateUserCreate(types.RegisterRequest{Username: "Owner", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "Owner", user.Username)
		assert.NotEqual(t, "s3cret", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := ValidateUserCreate(types.RegisterRequest{Password: "x"})
		requireInvalid(t, err, "username")
	})

	t.Run("first error wins", func(t *testing.T) {
		_, err := ValidateUserCreate(types.RegisterRequest{})
		requireInvalid(t, err, "username")
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := ValidateUserCreate(types.RegisterRequest{Username: "owner"})
		requireInvalid(t, err, "password")
	})
}

func TestValidateRestaurantCreate(t *testing.T) {
	t.Run("defaults table count", func(t *testing.T) {
		for _, tc := range []*int{nil, intPtr(0), intPtr(-3)} {
			r, err := ValidateRestaurantCreate(types.CreateRestaurantRequest{
				Name: "Test Bistro", Slug: "test-bistro", TableCount: tc,
			}, 7)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultTableCount, r.TableCount)
			assert.Equal(t, uint(7), r.OwnerID)
		}
	})

	t.Run("keeps explicit table count and optional fields", func(t *testing.T) {
		r, err := ValidateRestaurantCreate(types.CreateRestaurantRequest{
			Name: "Test Bistro", Slug: "test-bistro", TableCount: intPtr(4),
			Address: strPtr(" Marina "), CuisineType: strPtr(""),
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, r.TableCount)
		assert.Equal(t, "Marina", *r.Address)
		assert.Nil(t, r.CuisineType)
	})

	t.Run("rejects bad slug", func(t *testing.T) {
		_, err := ValidateRestaurantCreate(types.CreateRestaurantRequest{Name: "X", Slug: "Not A Slug"}, 1)
		requireInvalid(t, err, "slug")
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := ValidateRestaurantCreate(types.CreateRestaurantRequest{Slug: "x"}, 1)
		requireInvalid(t, err, "name")
	})
}

func TestValidateMenuCreate(t *testing.T) {
	m, err := ValidateMenuCreate(types.CreateMenuRequest{RestaurantID: 2, Name: "Lunch"})
	require.NoError(t, err)
	assert.True(t, *m.IsActive)
	assert.Nil(t, m.Description)

	m, err = ValidateMenuCreate(types.CreateMenuRequest{RestaurantID: 2, Name: "Late", IsActive: models.Bool(false)})
	require.NoError(t, err)
	assert.False(t, *m.IsActive)

	_, err = ValidateMenuCreate(types.CreateMenuRequest{Name: "Lunch"})
	requireInvalid(t, err, "restaurantId")
}

func TestValidateMenuItemCreate(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		item, err := ValidateMenuItemCreate(types.CreateMenuItemRequest{
			MenuID:    3,
			ItemDraft: types.ItemDraft{Name: "Soup", Price: "20", Category: "Starter"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), item.MenuID)
		assert.Equal(t, "20.00", item.Price)
		assert.Equal(t, int64(2000), item.PriceMinor)
		assert.True(t, item.Available())
		assert.False(t, item.IsBestseller)
		assert.False(t, item.IsChefsPick)
		assert.False(t, item.IsTodaysSpecial)
	})

	t.Run("missing menu id reported first", func(t *testing.T) {
		_, err := ValidateMenuItemCreate(types.CreateMenuItemRequest{})
		requireInvalid(t, err, "menuId")
	})

	tests := []struct {
		name  string
		draft types.ItemDraft
		field string
	}{
		{"missing name", types.ItemDraft{Price: "10", Category: "Main"}, "name"},
		{"blank name", types.ItemDraft{Name: "   ", Price: "10", Category: "Main"}, "name"},
		{"missing price", types.ItemDraft{Name: "Soup", Category: "Main"}, "price"},
		{"non numeric price", types.ItemDraft{Name: "Soup", Price: "ask staff", Category: "Main"}, "price"},
		{"negative price", types.ItemDraft{Name: "Soup", Price: "-4", Category: "Main"}, "price"},
		{"missing category", types.ItemDraft{Name: "Soup", Price: "10"}, "category"},
		{"long description", types.ItemDraft{Name: "Soup", Price: "10", Category: "Main", Description: strPtr(strings.Repeat("a", 501))}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateMenuItemCreate(types.CreateMenuItemRequest{MenuID: 1, ItemDraft: tt.draft})
			requireInvalid(t, err, tt.field)
		})
	}
}

func TestValidateItemDraftKeepsFlags(t *testing.T) {
	item, err := ValidateItemDraft(types.ItemDraft{
		Name: "Kunafa", Price: "AED 42", Category: "Dessert",
		IsBestseller: models.Bool(true), IsAvailable: models.Bool(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "42.00", item.Price)
	assert.True(t, item.IsBestseller)
	assert.False(t, item.Available())
	assert.Zero(t, item.MenuID)
}

func TestValidateMenuItemUpdate(t *testing.T) {
	t.Run("empty patch is a no-op", func(t *testing.T) {
		patch, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{})
		require.NoError(t, err)
		assert.Empty(t, patch)
	})

	t.Run("only present fields", func(t *testing.T) {
		patch, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{Price: strPtr("12")})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"price": "12.00", "price_minor": int64(1200)}, patch)
	})

	t.Run("empty description clears it", func(t *testing.T) {
		patch, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{Description: strPtr("")})
		require.NoError(t, err)
		v, ok := patch["description"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("flags", func(t *testing.T) {
		patch, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{IsAvailable: models.Bool(false)})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"is_available": false}, patch)
	})

	t.Run("bad price", func(t *testing.T) {
		_, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{Price: strPtr("free")})
		requireInvalid(t, err, "price")
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := ValidateMenuItemUpdate(types.UpdateMenuItemRequest{Name: strPtr(" ")})
		requireInvalid(t, err, "name")
	})
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		minor int64
		ok    bool
	}{
		{"20", "20.00", 2000, true},
		{"20.5", "20.50", 2050, true},
		{"0", "0.00", 0, true},
		{"AED 38", "38.00", 3800, true},
		{"38 aed", "38.00", 3800, true},
		{" 12.99 ", "12.99", 1299, true},
		{"12.999", "", 0, false},
		{"ask staff", "", 0, false},
		{"", "", 0, false},
		{"-1", "", 0, false},
		{"$10", "", 0, false},
		{"45\n50", "", 0, false},
		{"12\n", "12.00", 1200, true},
		{"AED\n38", "38.00", 3800, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, minor, err := NormalizePrice(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.minor, minor)
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "test-bistro", Slugify("Test Bistro"))
	assert.Equal(t, "the-golden-fork", Slugify("  The Golden Fork! "))
	assert.Equal(t, "cafe-2", Slugify("Cafe 2"))
	assert.Equal(t, "restaurant", Slugify("!!!"))
}

func TestValidateChatRequest(t *testing.T) {
	err := Validate(types.ChatRequest{Message: "hi", History: []types.ChatTurn{{Role: "system", Content: "x"}}})
	requireInvalid(t, err, "role")
}

func TestValidateItemDraftRejectsMultilinePrice(t *testing.T) {
	require.NotPanics(t, func() {
		_, err := ValidateItemDraft(types.ItemDraft{Name: "Soup", Price: "45\n50", Category: "Starter"})
		requireInvalid(t, err, "price")
	})
}
