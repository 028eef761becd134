package entity

import (
	"gorm.io/gorm"
)

// Category forms a tree via ParentID. A category either has subcategories or
// holds items directly; the UI assumes two levels but the schema allows any
// depth.
type Category struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	ParentID *uint  `json:"parentId"`

	Parent        *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Subcategories []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Items         []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}

// IsLeaf reports whether the category can hold items. Valid only when
// Subcategories were preloaded.
func (c *Category) IsLeaf() bool {
	return len(c.Subcategories) == 0
}
