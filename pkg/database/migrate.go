package database

import (
	"cozycorner-pos/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the five POS tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.MenuItem{},
		&model.Stock{},
		&model.Order{},
		&model.OrderItem{},
		&model.DailyRevenue{},
	)
}
