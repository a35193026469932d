package repository

import (
	"tastycorner/internal/models"

	"gorm.io/gorm"
)

type WishlistRepository interface {
	Add(userID, itemID uint) error
	Remove(userID, itemID uint) error
	ItemIDs(userID uint) ([]uint, error)
	Items(userID uint) ([]models.MenuItem, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add inserts the pair; a second insert of the same pair fails with gorm.ErrDuplicatedKey.
func (r *wishlistRepository) Add(userID, itemID uint) error {
	return r.db.Create(&models.Wishlist{UserID: userID, ItemID: itemID}).Error
}

func (r *wishlistRepository) Remove(userID, itemID uint) error {
	return r.db.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.Wishlist{}).Error
}

func (r *wishlistRepository) ItemIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Wishlist{}).Where("user_id = ?", userID).Order("item_id").Pluck("item_id", &ids).Error
	return ids, err
}

func (r *wishlistRepository) Items(userID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Table("menu_items AS m").
		Select("m.*").
		Joins("JOIN wishlist w ON m.item_id = w.item_id").
		Where("w.user_id = ?", userID).
		Order("w.created_at").
		Find(&items).Error
	return items, err
}
