package repository

import (
	"context"
	"errors"

	"cozycorner-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	FindQuantity(ctx context.Context, itemID uuid.UUID, date string) (int, error)
	QuantitiesByDate(ctx context.Context, date string) (map[uuid.UUID]int, error)
	ListByDate(ctx context.Context, date string) ([]model.StockView, error)
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Stock, error)

	// Transactional ledger operations
	LockQuantities(tx *gorm.DB, itemIDs []uuid.UUID, date string) (map[uuid.UUID]int, error)
	Decrement(tx *gorm.DB, itemID uuid.UUID, date string, qty int) (bool, error)
	Increment(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error
	Upsert(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error
	SetByID(tx *gorm.DB, id uuid.UUID, qty int) error
	InsertMissing(tx *gorm.DB, itemIDs []uuid.UUID, date string, qty int) (int64, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

// FindQuantity returns 0 when the item has no row for date.
func (r *stockRepo) FindQuantity(ctx context.Context, itemID uuid.UUID, date string) (int, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).Where("menu_item_id = ? AND date = ?", itemID, date).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

func (r *stockRepo) QuantitiesByDate(ctx context.Context, date string) (map[uuid.UUID]int, error) {
	var rows []model.Stock
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, s := range rows {
		out[s.MenuItemID] = s.Quantity
	}
	return out, nil
}

func (r *stockRepo) ListByDate(ctx context.Context, date string) ([]model.StockView, error) {
	var rows []model.StockView
	err := r.db.WithContext(ctx).
		Table("stock AS s").
		Select("s.id, s.menu_item_id, s.quantity, s.date, m.name, m.category, m.price").
		Joins("JOIN menu_items m ON m.id = s.menu_item_id").
		Where("s.date = ?", date).
		Order("m.category ASC, m.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *stockRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	if err := tx.First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// LockQuantities reads the rows with FOR UPDATE (ignored by SQLite, whose
// single connection already serializes writers). Missing rows are absent
// from the map.
func (r *stockRepo) LockQuantities(tx *gorm.DB, itemIDs []uuid.UUID, date string) (map[uuid.UUID]int, error) {
	var rows []model.Stock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ? AND menu_item_id IN ?", date, itemIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(rows))
	for _, s := range rows {
		out[s.MenuItemID] = s.Quantity
	}
	return out, nil
}

// Decrement subtracts qty only while enough remains; false means the row was
// missing or short.
func (r *stockRepo) Decrement(tx *gorm.DB, itemID uuid.UUID, date string, qty int) (bool, error) {
	res := tx.Model(&model.Stock{}).
		Where("menu_item_id = ? AND date = ? AND quantity >= ?", itemID, date, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *stockRepo) Increment(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error {
	return tx.Model(&model.Stock{}).
		Where("menu_item_id = ? AND date = ?", itemID, date).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *stockRepo) Upsert(tx *gorm.DB, itemID uuid.UUID, date string, qty int) error {
	row := model.Stock{MenuItemID: itemID, Date: date, Quantity: qty}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "menu_item_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&row).Error
}

func (r *stockRepo) SetByID(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Stock{}).Where("id = ?", id).Update("quantity", qty).Error
}

// InsertMissing creates rows only for items that have none on date.
func (r *stockRepo) InsertMissing(tx *gorm.DB, itemIDs []uuid.UUID, date string, qty int) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	rows := make([]model.Stock, 0, len(itemIDs))
	for _, id := range itemIDs {
		rows = append(rows, model.Stock{MenuItemID: id, Date: date, Quantity: qty})
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return res.RowsAffected, res.Error
}
