package models

import "time"

type Wishlist struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ItemID    uint      `json:"item_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (Wishlist) TableName() string { return "wishlist" }
