package repository

import (
	"errors"
	"time"

	"tastycorner/internal/models"

	"gorm.io/gorm"
)

// ErrCouponExhausted is returned when a coupon reached its usage limit
// between validation and order placement.
var ErrCouponExhausted = errors.New("coupon usage limit reached")

// Delivery is an order waiting for a driver, joined to the customer's contact details.
type Delivery struct {
	OrderID   uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderRepository interface {
	// Place writes the order and its items, and consumes one use of couponID
	// when given, all in one transaction.
	Place(order *models.Order, couponID *uint) error
	GetByID(id uint) (*models.Order, error)
	GetForUser(id, userID uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	UpdateStatus(id uint, from, to models.OrderStatus) error
	GetDeliveries(status models.OrderStatus) ([]Delivery, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Place(order *models.Order, couponID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if couponID != nil {
			res := tx.Model(&models.Coupon{}).
				Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", *couponID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCouponExhausted
			}
		}
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetForUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Order("order_id DESC").Find(&orders).Error
	return orders, err
}

// UpdateStatus moves an order only if it is still in status from.
func (r *orderRepository) UpdateStatus(id uint, from, to models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("order_id = ? AND status = ?", id, string(from)).Update("status", string(to))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) GetDeliveries(status models.OrderStatus) ([]Delivery, error) {
	var deliveries []Delivery
	err := r.db.Table("orders AS o").
		Select("o.order_id, u.name, u.address, u.phone, o.total, o.created_at").
		Joins("JOIN users u ON o.user_id = u.user_id").
		Where("o.status = ?", string(status)).
		Order("o.created_at").Order("o.order_id").
		Scan(&deliveries).Error
	return deliveries, err
}
