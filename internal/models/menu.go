package models

import (
	"time"
)

// Menu belongs to a restaurant. Position orders menus within their restaurant;
// the lowest active position is what customers see by default.
type Menu struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurantId"`
	Name         string    `gorm:"not null" json:"name"`
	Description  *string   `json:"description"`
	IsActive     *bool     `json:"isActive"`
	Position     int       `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Active reports whether the menu is shown to customers. NULL counts as active.
func (m *Menu) Active() bool {
	return m.IsActive == nil || *m.IsActive
}

// MenuItem is a single dish or drink. Price is the normalised two-decimal
// amount; PriceMinor holds the same amount in fils.
type MenuItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MenuID          uint      `gorm:"not null;index" json:"menuId"`
	Name            string    `gorm:"not null" json:"name"`
	Description     *string   `json:"description"`
	Price           string    `gorm:"not null" json:"price"`
	PriceMinor      int64     `gorm:"not null;default:0" json:"priceMinor"`
	Category        string    `gorm:"not null" json:"category"`
	ImageURL        *string   `gorm:"column:image_url" json:"imageUrl"`
	IsAvailable     *bool     `json:"isAvailable"`
	IsBestseller    bool      `gorm:"not null;default:false" json:"isBestseller"`
	IsChefsPick     bool      `gorm:"not null;default:false" json:"isChefsPick"`
	IsTodaysSpecial bool      `gorm:"not null;default:false" json:"isTodaysSpecial"`
	Position        int       `gorm:"not null;default:0" json:"position"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Available reports whether the item may be shown to customers. Only an
// explicit false hides an item; NULL predates the column and counts as true.
func (i *MenuItem) Available() bool {
	return i.IsAvailable == nil || *i.IsAvailable
}

// MenuWithItems is the composite every read path works on. It is assembled
// at read time and never persisted.
type MenuWithItems struct {
	Menu
	Items []MenuItem `json:"items"`
}

func Bool(b bool) *bool {
	return &b
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
