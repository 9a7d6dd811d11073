package repository

import (
	"context"
	"errors"

	"dataflow-backend/internal/model"

	"gorm.io/gorm"
)

type dataSourceRepository struct {
	db *gorm.DB
}

// NewDataSourceRepository creates a new instance of DataSourceRepository
func NewDataSourceRepository(db *gorm.DB) DataSourceRepository {
	return &dataSourceRepository{db: db}
}

func (r *dataSourceRepository) Create(ctx context.Context, dataSource *model.DataSource) error {
	return r.db.WithContext(ctx).Create(dataSource).Error
}

func (r *dataSourceRepository) CreateBatch(ctx context.Context, dataSources []*model.DataSource) error {
	if len(dataSources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(dataSources).Error
	})
}

func (r *dataSourceRepository) GetByID(ctx context.Context, id string) (*model.DataSource, error) {
	var dataSource model.DataSource
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&dataSource)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDataSourceNotFound
		}
		return nil, result.Error
	}
	return &dataSource, nil
}

func (r *dataSourceRepository) GetAll(ctx context.Context, catalogItemID string, limit, offset int) ([]*model.DataSource, int64, error) {
	var dataSources []*model.DataSource
	var total int64

	query := r.db.WithContext(ctx).Model(&model.DataSource{})
	if catalogItemID != "" {
		query = query.Where("data_catalog_item_id = ?", catalogItemID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&dataSources)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return dataSources, total, nil
}

func (r *dataSourceRepository) UpdateConnection(ctx context.Context, dataSource *model.DataSource) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(dataSource).
			Select("connection_parameters", "connected", "updated_at").
			Updates(dataSource).Error
		if err != nil {
			return err
		}

		// refresh
		err = tx.Where("id = ?", dataSource.ID).First(dataSource).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDataSourceNotFound
		}
		return err
	})
}

func (r *dataSourceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DataSource{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDataSourceNotFound
	}
	return nil
}
