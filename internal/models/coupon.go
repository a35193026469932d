package models

type Coupon struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	Code          string   `json:"code" gorm:"unique;not null"`
	DiscountType  string   `json:"discount_type" gorm:"not null"` // percentage, fixed
	DiscountValue float64  `json:"discount_value" gorm:"not null"`
	MinOrder      float64  `json:"min_order" gorm:"default:0"`
	MaxDiscount   *float64 `json:"max_discount"`
	UsageLimit    *int     `json:"usage_limit"`
	UsedCount     int      `json:"used_count" gorm:"default:0"`
	ExpiryDate    *string  `json:"expiry_date"` // YYYY-MM-DD
	IsActive      bool     `json:"is_active" gorm:"default:true"`
}

func (Coupon) TableName() string { return "coupons" }

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)
