package models

// OrderItem keeps a snapshot of the menu item's name and price at order time.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ItemID    *uint   `json:"item_id"`
	Name      string  `json:"name" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Allergies string  `json:"allergies"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
