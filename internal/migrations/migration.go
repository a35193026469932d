package migrations

import (
	"fmt"
	"log"

	"tastycorner/internal/database"
	"tastycorner/internal/models"

	"gorm.io/gorm"
)

// RunMigrations creates any missing tables, columns and indexes.
// Existing tables and data are never dropped.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(database.Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// StarterMenu is inserted by SeedDefaults into an empty menu.
var StarterMenu = []models.MenuItem{
	{Name: "Classic Burger", Description: "Beef patty, cheddar, lettuce, tomato and house sauce", Price: 12.99, Category: "Burgers"},
	{Name: "Veggie Burger", Description: "Black bean patty with avocado", Price: 11.49, Category: "Burgers"},
	{Name: "Margherita Pizza", Description: "Tomato, mozzarella and fresh basil", Price: 14.99, Category: "Pizza"},
	{Name: "Pepperoni Pizza", Description: "Loaded with pepperoni and mozzarella", Price: 16.49, Category: "Pizza"},
	{Name: "Chicken Wings", Description: "Crispy wings tossed in buffalo sauce", Price: 10.99, Category: "Starters"},
	{Name: "Garlic Bread", Description: "Toasted baguette with garlic butter", Price: 5.49, Category: "Starters"},
	{Name: "Chocolate Cake", Description: "Rich chocolate layer cake", Price: 7.99, Category: "Desserts"},
	{Name: "Lemonade", Description: "Freshly squeezed", Price: 3.49, Category: "Drinks"},
}

// SeedDefaults creates the starter menu when no menu items exist yet.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if count > 0 {
		log.Println("Menu already has items, skipping seed")
		return nil
	}

	log.Println("Creating starter menu...")
	items := make([]models.MenuItem, len(StarterMenu))
	copy(items, StarterMenu)
	for i := range items {
		items[i].IsActive = true
	}
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}

	log.Printf("Created %d menu items", len(items))
	return nil
}
