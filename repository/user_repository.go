package repository

import (
	"cafebot/entity"
	"errors"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByTelegramID(telegramID int64) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("telegram_id = ?", telegramID).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// GetOrCreate creates the user lazily on first contact and keeps
// username/first name fresh on later ones.
func (r *UserRepository) GetOrCreate(telegramID int64, username *string, firstName string) (*entity.User, error) {
	var u entity.User
	err := r.DB.Where("telegram_id = ?", telegramID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = entity.User{TelegramID: telegramID, Username: username, FirstName: firstName}
		if err := r.DB.Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	if err != nil {
		return nil, err
	}

	changed := u.FirstName != firstName
	if (u.Username == nil) != (username == nil) {
		changed = true
	} else if u.Username != nil && username != nil && *u.Username != *username {
		changed = true
	}
	if changed {
		u.Username = username
		u.FirstName = firstName
		if err := r.DB.Save(&u).Error; err != nil {
			return nil, err
		}
	}
	return &u, nil
}
