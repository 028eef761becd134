package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`
	Price       int64   `gorm:"not null" json:"price"` // smallest currency unit

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"` // preload when the item's category name is rendered
}
