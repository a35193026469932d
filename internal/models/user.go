package models

import "time"

type User struct {
	UserID       uint      `json:"user_id" gorm:"column:user_id;primaryKey"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
