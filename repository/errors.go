package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned whenever an id does not resolve in a store.
var ErrNotFound = errors.New("not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
