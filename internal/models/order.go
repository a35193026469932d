package models

import "time"

type Order struct {
	OrderID     uint        `json:"order_id" gorm:"column:order_id;primaryKey"`
	UserID      *uint       `json:"user_id" gorm:"index"`
	User        *User       `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Subtotal    float64     `json:"subtotal" gorm:"not null"`
	Tax         float64     `json:"tax" gorm:"not null"`
	DeliveryFee float64     `json:"delivery_fee" gorm:"not null"`
	Tip         float64     `json:"tip" gorm:"default:0"`
	Total       float64     `json:"total" gorm:"not null"`
	Status      string      `json:"status" gorm:"default:'pending'"` // pending, preparing, out_for_delivery, completed, cancelled
	CouponCode  *string     `json:"coupon_code"`
	Discount    float64     `json:"discount" gorm:"default:0"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderPreparing, OrderCancelled},
	OrderPreparing:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderCompleted, OrderCancelled},
}

// CanTransition reports whether an order may move from one status to another.
// completed and cancelled are terminal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s, in workflow order.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderTransitions[s]
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderOutForDelivery, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
