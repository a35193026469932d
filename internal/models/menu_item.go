package models

type MenuItem struct {
	ItemID      uint    `json:"item_id" gorm:"column:item_id;primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category" gorm:"not null;index"`
	Image       string  `json:"image"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}

func (MenuItem) TableName() string { return "menu_items" }
