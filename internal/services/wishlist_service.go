package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"
)

type WishlistService interface {
	Add(userID, itemID uint) error
	Remove(userID, itemID uint) error
	Items(userID uint) ([]models.MenuItem, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	menuRepo     repository.MenuRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, menuRepo repository.MenuRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo, menuRepo: menuRepo}
}

func (s *wishlistService) Add(userID, itemID uint) error {
	item, err := s.menuRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to load item: %w", err)
	}
	if !item.IsActive {
		return ErrItemNotFound
	}
	if err := s.wishlistRepo.Add(userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyWishlisted
		}
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

func (s *wishlistService) Remove(userID, itemID uint) error {
	return s.wishlistRepo.Remove(userID, itemID)
}

func (s *wishlistService) Items(userID uint) ([]models.MenuItem, error) {
	return s.wishlistRepo.Items(userID)
}
