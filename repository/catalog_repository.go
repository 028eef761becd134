package repository

import (
	"cafebot/entity"

	"gorm.io/gorm"
)

type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

// GetCategory loads a category with its subcategories and items so the caller
// can tell leaf from branch without further queries.
func (r *CatalogRepository) GetCategory(id uint) (*entity.Category, error) {
	var c entity.Category
	err := r.DB.
		Preload("Subcategories").
		Preload("Items").
		First(&c, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CatalogRepository) ListRootCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Where("parent_id IS NULL").Order("id").Find(&cats).Error
	return cats, err
}

// ListLeafCategories returns categories with no subcategories; only these may
// hold items or be targeted by the intake dialogue.
func (r *CatalogRepository) ListLeafCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.
		Where("NOT EXISTS (SELECT 1 FROM categories sub WHERE sub.parent_id = categories.id AND sub.deleted_at IS NULL)").
		Order("id").
		Find(&cats).Error
	return cats, err
}

func (r *CatalogRepository) GetItem(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.Preload("Category").First(&item, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *CatalogRepository) CreateItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}
