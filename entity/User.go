package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID int64   `gorm:"uniqueIndex;not null" json:"telegramId"`
	Username   *string `gorm:"uniqueIndex" json:"username"`
	FirstName  string  `json:"firstName"`

	Orders []Order `json:"-"` // preload only when order detail needs the owner
}

// DisplayName is what staff see on an order card. Nil-safe: order owners may
// have been removed.
func (u *User) DisplayName() string {
	if u == nil {
		return "Deleted user"
	}
	return u.FirstName
}

// Handle returns the @-name or a placeholder.
func (u *User) Handle() string {
	if u == nil || u.Username == nil || *u.Username == "" {
		return "N/A"
	}
	return *u.Username
}
