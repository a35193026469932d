package repository

import (
	"strings"

	"tastycorner/internal/models"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *models.Coupon) error
	GetByCode(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) GetAll() ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Order("code").Find(&coupons).Error
	return coupons, err
}
