package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/menuqr/backend/internal/models"
)

func item(name, category string, available *bool) models.MenuItem {
	return models.MenuItem{Name: name, Category: category, Price: "10.00", IsAvailable: available}
}

func TestVisibleItems(t *testing.T) {
	items := []models.MenuItem{
		item("legacy", "Main", nil),
		item("on", "Main", models.Bool(true)),
		item("off", "Main", models.Bool(false)),
	}

	visible := VisibleItems(items)
	require.Len(t, visible, 2)
	assert.Equal(t, "legacy", visible[0].Name)
	assert.Equal(t, "on", visible[1].Name)
}

func TestPublicMenuHidesUnavailable(t *testing.T) {
	desc := "hot"
	keep := models.MenuItem{ID: 1, MenuID: 5, Name: "Soup", Description: &desc, Price: "20.00", Category: "Starter", IsAvailable: models.Bool(true), IsBestseller: true}
	menu := models.MenuWithItems{
		Menu:  models.Menu{ID: 5, Name: "Lunch"},
		Items: []models.MenuItem{keep, item("Gone", "Starter", models.Bool(false))},
	}

	public := PublicMenu(menu)
	require.Len(t, public.Items, 1)
	assert.Equal(t, keep, public.Items[0])
	require.Len(t, public.Categories, 1)
	assert.Equal(t, "Starter", public.Categories[0].Category)
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory([]models.MenuItem{
		item("a", "Main", nil),
		item("b", "Dessert", nil),
		item("c", "main", nil),
		item("d", "", nil),
		item("e", "Main", nil),
	})

	require.Len(t, groups, 4)
	assert.Equal(t, "Main", groups[0].Category)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "Dessert", groups[1].Category)
	assert.Equal(t, "main", groups[2].Category)
	assert.Equal(t, OtherCategory, groups[3].Category)
}

func TestSelectMenu(t *testing.T) {
	menus := []models.MenuWithItems{
		{Menu: models.Menu{ID: 1, Name: "Off", IsActive: models.Bool(false)}},
		{Menu: models.Menu{ID: 2, Name: "Lunch"}},
		{Menu: models.Menu{ID: 3, Name: "Dinner", IsActive: models.Bool(true)}},
	}

	assert.Equal(t, uint(2), SelectMenu(menus, 0).ID)
	assert.Equal(t, uint(3), SelectMenu(menus, 3).ID)
	assert.Nil(t, SelectMenu(menus, 1))
	assert.Nil(t, SelectMenu(menus, 99))
	assert.Nil(t, SelectMenu(menus[:1], 0))
}

func TestChatLine(t *testing.T) {
	desc := "Creamy hummus with truffle oil"
	line := ChatLine(models.MenuItem{
		Name: "Truffle Hummus", Category: "Appetizer", Price: "38.00",
		Description: &desc, IsBestseller: true, IsTodaysSpecial: true,
	})

	assert.Equal(t, "- Truffle Hummus (Appetizer) - AED 38.00 [BESTSELLER, TODAY'S SPECIAL]\n  Creamy hummus with truffle oil", line)
	assert.Equal(t, "- Tea (Drink) - AED 10.00", ChatLine(item("Tea", "Drink", nil)))
}

func TestChatContextSkipsHiddenAndInactive(t *testing.T) {
	menus := []models.MenuWithItems{
		{Menu: models.Menu{ID: 1}, Items: []models.MenuItem{item("Shown", "Main", nil), item("Hidden", "Main", models.Bool(false))}},
		{Menu: models.Menu{ID: 2, IsActive: models.Bool(false)}, Items: []models.MenuItem{item("Archived", "Main", nil)}},
	}

	ctx := ChatContext(menus)
	assert.Contains(t, ctx, "Shown")
	assert.NotContains(t, ctx, "Hidden")
	assert.NotContains(t, ctx, "Archived")
	assert.Equal(t, 1, strings.Count(ctx, "\n")+1)
}
