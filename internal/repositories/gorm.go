package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"katalog/internal/models"
)

// GORMItemRepository stores items in a relational table through GORM.
// It works with both the postgres and the sqlite driver.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository migrates the items table and returns the
// repository.
func NewGORMItemRepository(db *gorm.DB) (*GORMItemRepository, error) {
	if err := db.AutoMigrate(&models.Item{}); err != nil {
		return nil, err
	}
	return &GORMItemRepository{db: db}, nil
}

// Put upserts the item under its primary key.
func (r *GORMItemRepository) Put(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Get returns the item stored under id, or ErrItemNotFound.
func (r *GORMItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the row under id. A delete that matched nothing is
// reported as ErrItemNotFound.
func (r *GORMItemRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// All returns every row without any ordering clause.
func (r *GORMItemRepository) All(ctx context.Context) ([]*models.Item, error) {
	var items []*models.Item
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
