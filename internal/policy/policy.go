// Package policy decides what customers see of a menu. It runs on the read
// side only: writes store every item, and these functions filter and project
// the assembled composites on their way out.
package policy

import (
	"fmt"
	"strings"

	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/types"
)

// OtherCategory collects items whose category is empty.
const OtherCategory = "Other"

// IsVisible reports whether a customer may see the item. Only an explicit
// false hides it.
func IsVisible(item models.MenuItem) bool {
	return item.Available()
}

// VisibleItems returns the visible items in their original order.
func VisibleItems(items []models.MenuItem) []models.MenuItem {
	visible := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if IsVisible(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

// ActiveMenus drops menus an owner has switched off.
func ActiveMenus(menus []models.MenuWithItems) []models.MenuWithItems {
	active := make([]models.MenuWithItems, 0, len(menus))
	for _, m := range menus {
		if m.Active() {
			active = append(active, m)
		}
	}
	return active
}

// GroupByCategory groups items by exact category string ("Main" and "main"
// are different groups). Groups appear in order of first appearance.
func GroupByCategory(items []models.MenuItem) []types.CategoryGroup {
	var groups []types.CategoryGroup
	index := map[string]int{}
	for _, item := range items {
		key := item.Category
		if strings.TrimSpace(key) == "" {
			key = OtherCategory
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, types.CategoryGroup{Category: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// SelectMenu picks the menu the public page shows: the requested one, or the
// first active menu by position when none is requested. It returns nil if the
// requested menu is missing or inactive, or if no active menu exists.
func SelectMenu(menus []models.MenuWithItems, requested uint) *models.MenuWithItems {
	active := ActiveMenus(menus)
	if requested != 0 {
		for i := range active {
			if active[i].ID == requested {
				return &active[i]
			}
		}
		return nil
	}
	if len(active) == 0 {
		return nil
	}
	return &active[0]
}

// PublicMenu projects a composite into what customers see.
func PublicMenu(menu models.MenuWithItems) types.PublicMenu {
	visible := VisibleItems(menu.Items)
	return types.PublicMenu{
		ID:          menu.ID,
		Name:        menu.Name,
		Description: menu.Description,
		Items:       visible,
		Categories:  GroupByCategory(visible),
	}
}

// PublicRestaurant strips owner-only fields.
func PublicRestaurant(r models.Restaurant) types.PublicRestaurant {
	return types.PublicRestaurant{
		ID:             r.ID,
		Name:           r.Name,
		Slug:           r.Slug,
		Address:        r.Address,
		ContactNumber:  r.ContactNumber,
		WhatsappNumber: r.WhatsappNumber,
		CuisineType:    r.CuisineType,
		Description:    r.Description,
		CoverImage:     r.CoverImage,
		TableCount:     r.TableCount,
	}
}

// Tags lists the merchandising labels of an item. Flags never affect visibility.
func Tags(item models.MenuItem) []string {
	var tags []string
	if item.IsBestseller {
		tags = append(tags, "BESTSELLER")
	}
	if item.IsChefsPick {
		tags = append(tags, "CHEF'S PICK")
	}
	if item.IsTodaysSpecial {
		tags = append(tags, "TODAY'S SPECIAL")
	}
	return tags
}

// ChatLine renders one item for the chat assistant's prompt.
func ChatLine(item models.MenuItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s) - AED %s", item.Name, item.Category, item.Price)
	if tags := Tags(item); len(tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(tags, ", "))
	}
	if item.Description != nil && *item.Description != "" {
		fmt.Fprintf(&b, "\n  %s", *item.Description)
	}
	return b.String()
}

// ChatContext renders every visible item of every active menu, one entry per
// item, in menu then item order.
func ChatContext(menus []models.MenuWithItems) string {
	var lines []string
	for _, menu := range ActiveMenus(menus) {
		for _, item := range VisibleItems(menu.Items) {
			lines = append(lines, ChatLine(item))
		}
	}
	return strings.Join(lines, "\n")
}
