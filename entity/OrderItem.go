package entity

import (
	"gorm.io/gorm"
)

// OrderItem is a snapshot of a menu item at order time. ItemName and Price are
// copied, never joined back to the catalog, so order history survives later
// catalog edits and deletions.
type OrderItem struct {
	gorm.Model
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`
}
