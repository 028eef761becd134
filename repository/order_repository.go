package repository

import (
	"cafebot/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetOrder loads an order with its item snapshots and (possibly absent) owner.
func (r *OrderRepository) GetOrder(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").
		Preload("User").
		First(&o, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(userID uint, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// ListByStatus is unbounded: staff filter views want every matching order.
func (r *OrderRepository) ListByStatus(status entity.OrderStatus) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Preload("User").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListRecent(limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(tx *gorm.DB, id uint, status entity.OrderStatus) error {
	return tx.Model(&entity.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *OrderRepository) CountByStatus(status entity.OrderStatus) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
