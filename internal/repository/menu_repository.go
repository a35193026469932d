package repository

import (
	"strings"

	"tastycorner/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetByNames(names []string) ([]models.MenuItem, error)
	Search(query, category string) ([]models.MenuItem, error)
	ActiveCategories() ([]string, error)
	AllCategories() ([]string, error)
	GetAll() ([]models.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByNames(names []string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(names) == 0 {
		return items, nil
	}
	err := r.db.Where("name IN ?", names).Find(&items).Error
	return items, err
}

// Search returns active items whose name or description contains query
// (case-insensitive), optionally restricted to one exact category.
func (r *menuRepository) Search(query, category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	tx := r.db.Where("is_active = ?", true)
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		pattern := "%" + q + "%"
		tx = tx.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	err := tx.Order("category").Order("item_id").Find(&items).Error
	return items, err
}

func (r *menuRepository) ActiveCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.MenuItem{}).Where("is_active = ?", true).
		Distinct().Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *menuRepository) AllCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.MenuItem{}).Distinct().Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *menuRepository) GetAll() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Order("category").Order("item_id").Find(&items).Error
	return items, err
}
