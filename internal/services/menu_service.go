package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"
)

// FeaturedItemNames are shown on the home page, in this order.
var FeaturedItemNames = []string{"Classic Burger", "Margherita Pizza", "Chicken Wings", "Chocolate Cake"}

type MenuGroup struct {
	Category string
	Items    []models.MenuItem
}

type MenuPage struct {
	Search     string
	Category   string
	Groups     []MenuGroup
	Categories []string
	Wishlisted map[uint]bool
}

type MenuService interface {
	Featured() ([]models.MenuItem, error)
	Browse(search, category string, userID *uint) (*MenuPage, error)
	GetItem(id uint) (*models.MenuItem, error)
}

type menuService struct {
	menuRepo     repository.MenuRepository
	wishlistRepo repository.WishlistRepository
}

func NewMenuService(menuRepo repository.MenuRepository, wishlistRepo repository.WishlistRepository) MenuService {
	return &menuService{menuRepo: menuRepo, wishlistRepo: wishlistRepo}
}

func (s *menuService) Featured() ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetByNames(FeaturedItemNames)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured items: %w", err)
	}

	byName := make(map[string]models.MenuItem, len(items))
	for _, item := range items {
		if _, seen := byName[item.Name]; !seen {
			byName[item.Name] = item
		}
	}
	featured := make([]models.MenuItem, 0, len(FeaturedItemNames))
	for _, name := range FeaturedItemNames {
		if item, ok := byName[name]; ok {
			featured = append(featured, item)
		}
	}
	return featured, nil
}

// Browse returns active items matching search, grouped by category.
func (s *menuService) Browse(search, category string, userID *uint) (*MenuPage, error) {
	page := &MenuPage{
		Search:     strings.TrimSpace(search),
		Category:   strings.TrimSpace(category),
		Wishlisted: map[uint]bool{},
	}

	items, err := s.menuRepo.Search(page.Search, page.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to search menu: %w", err)
	}
	page.Groups = groupByCategory(items)

	page.Categories, err = s.menuRepo.ActiveCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if userID != nil {
		ids, err := s.wishlistRepo.ItemIDs(*userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load wishlist: %w", err)
		}
		for _, id := range ids {
			page.Wishlisted[id] = true
		}
	}
	return page, nil
}

func groupByCategory(items []models.MenuItem) []MenuGroup {
	index := map[string]int{}
	var groups []MenuGroup
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, MenuGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups
}

// GetItem returns an orderable item; inactive items count as missing.
func (s *menuService) GetItem(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if !item.IsActive {
		return nil, ErrItemNotFound
	}
	return item, nil
}
