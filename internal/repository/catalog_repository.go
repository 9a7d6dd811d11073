package repository

import (
	"context"
	"errors"

	"dataflow-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a gorm backed CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*model.DataCatalogItem, error) {
	var item model.DataCatalogItem
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]*model.DataCatalogItem, error) {
	var items []*model.DataCatalogItem
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert inserts catalog items, overwriting name, logo, category and the
// parameter template of items that already exist
func (r *catalogRepository) Upsert(ctx context.Context, items []model.DataCatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "logo", "category", "connection_parameters", "metadata", "updated_at"}),
	}).Create(&items).Error
}
