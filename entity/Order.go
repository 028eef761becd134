package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status     OrderStatus `gorm:"not null;default:NEW" json:"status"`
	TotalPrice int64       `gorm:"not null" json:"totalPrice"` // frozen at creation

	UserID uint  `json:"userId"`
	User   *User `json:"-"` // preload for staff views only

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
