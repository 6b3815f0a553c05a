// Package testutil builds throwaway SQLite databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"cozycorner-pos/internal/model"
	"cozycorner-pos/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite file under t.TempDir and closes it on cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Options{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "pos.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateMenuItem inserts one menu item priced in whole rupiah.
func CreateMenuItem(t testing.TB, db *gorm.DB, name, category string, price int64) model.MenuItem {
	t.Helper()

	item := model.MenuItem{Name: name, Category: category, Price: decimal.NewFromInt(price)}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// SetStock writes a stock row directly, bypassing the ledger.
func SetStock(t testing.TB, db *gorm.DB, item model.MenuItem, date string, qty int) {
	t.Helper()

	row := model.Stock{MenuItemID: item.ID, Date: date, Quantity: qty}
	require.NoError(t, db.Create(&row).Error)
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *gorm.DB, value interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}
