package models

import (
	"time"
)

const DefaultTableCount = 10

type Restaurant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerID        uint      `gorm:"column:user_id;not null;index" json:"ownerId"`
	Name           string    `gorm:"not null" json:"name"`
	Slug           string    `gorm:"size:128;not null;uniqueIndex" json:"slug"`
	Address        *string   `json:"address"`
	ContactNumber  *string   `json:"contactNumber"`
	WhatsappNumber *string   `json:"whatsappNumber"`
	CuisineType    *string   `json:"cuisineType"`
	Description    *string   `json:"description"`
	CoverImage     *string   `json:"coverImage"`
	TableCount     int       `gorm:"not null;default:10" json:"tableCount"`
	CreatedAt      time.Time `json:"createdAt"`
}
