package repository

import (
	"context"

	"dataflow-backend/internal/model"
)

// DataSourceRepository defines the interface for data source data operations
type DataSourceRepository interface {
	// Create inserts a new data source and commits it
	Create(ctx context.Context, dataSource *model.DataSource) error

	// CreateBatch inserts several data sources in one transaction
	CreateBatch(ctx context.Context, dataSources []*model.DataSource) error

	// GetByID retrieves a data source by its UUID
	GetByID(ctx context.Context, id string) (*model.DataSource, error)

	// GetAll retrieves data sources, optionally filtered by catalog item
	GetAll(ctx context.Context, catalogItemID string, limit, offset int) ([]*model.DataSource, int64, error)

	// UpdateConnection stores the connection parameters and connected flag of
	// dataSource, then reloads it from the store
	UpdateConnection(ctx context.Context, dataSource *model.DataSource) error

	// Delete removes a data source
	Delete(ctx context.Context, id string) error
}

// CatalogRepository defines the read/seed operations on the data catalog
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*model.DataCatalogItem, error)
	List(ctx context.Context) ([]*model.DataCatalogItem, error)
	Upsert(ctx context.Context, items []model.DataCatalogItem) error
}
