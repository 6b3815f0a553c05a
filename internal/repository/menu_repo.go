package repository

import (
	"context"

	"cozycorner-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(item *model.MenuItem) error
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]model.MenuItem, error)
	FindByCategory(ctx context.Context, category string) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	FindByIDs(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]model.MenuItem, error)
	ListIDs(tx *gorm.DB) ([]uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) Create(item *model.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Count(&n).Error
	return n, err
}

func (r *menuRepo) FindAll(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByCategory(ctx context.Context, category string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs runs on tx so the catalog read joins the caller's transaction.
func (r *menuRepo) FindByIDs(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]model.MenuItem, error) {
	var items []model.MenuItem
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]model.MenuItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *menuRepo) ListIDs(tx *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.MenuItem{}).Pluck("id", &ids).Error
	return ids, err
}

// Update applies a partial update and reports gorm.ErrRecordNotFound when no
// row matched.
func (r *menuRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
