package service

import (
	"context"
	"fmt"
	"log/slog"

	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"
	"dataflow-backend/internal/utils"
)

type CatalogService interface {
	ListCatalogItems(ctx context.Context) ([]*model.DataCatalogItem, error)
	GetCatalogItem(ctx context.Context, id string) (*model.DataCatalogItem, error)
	SelectCatalogItems(ctx context.Context, req *SelectCatalogItemsRequest) ([]*model.DataSource, error)
	SeedCatalog(ctx context.Context) (int, error)
}

// SelectCatalogItemsRequest lists the catalog items to instantiate as new
// data sources
type SelectCatalogItemsRequest struct {
	CatalogItemIDs []string `json:"catalog_item_ids" validate:"required,min=1,dive,required"`
}

type catalogService struct {
	catalogRepo    repository.CatalogRepository
	dataSourceRepo repository.DataSourceRepository
	seed           []model.DataCatalogItem
	logger         *slog.Logger
}

// NewCatalogService creates a CatalogService. seed is written by SeedCatalog;
// nil means model.DefaultCatalog().
func NewCatalogService(catalogRepo repository.CatalogRepository, dataSourceRepo repository.DataSourceRepository, seed []model.DataCatalogItem, logger *slog.Logger) CatalogService {
	if seed == nil {
		seed = model.DefaultCatalog()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogService{
		catalogRepo:    catalogRepo,
		dataSourceRepo: dataSourceRepo,
		seed:           seed,
		logger:         logger,
	}
}

func (s *catalogService) ListCatalogItems(ctx context.Context) ([]*model.DataCatalogItem, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	return items, nil
}

func (s *catalogService) GetCatalogItem(ctx context.Context, id string) (*model.DataCatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}
	return item, nil
}

// SelectCatalogItems creates one disconnected data source per selected catalog
// item, seeded with a copy of the item's parameter template. Either all data
// sources are created or none.
func (s *catalogService) SelectCatalogItems(ctx context.Context, req *SelectCatalogItemsRequest) ([]*model.DataSource, error) {
	if len(req.CatalogItemIDs) == 0 {
		return nil, ErrNoCatalogItemsSelected
	}

	dataSources := make([]*model.DataSource, 0, len(req.CatalogItemIDs))
	for _, id := range req.CatalogItemIDs {
		item, err := s.catalogRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get catalog item %s: %w", id, err)
		}

		dataSources = append(dataSources, &model.DataSource{
			ID:                   utils.GenerateObjectID(),
			DataCatalogItemID:    item.ID,
			ConnectionParameters: item.ConnectionParameters.Clone(),
			Connected:            false,
		})
	}

	if err := s.dataSourceRepo.CreateBatch(ctx, dataSources); err != nil {
		return nil, fmt.Errorf("failed to create data sources: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog items selected", slog.Int("count", len(dataSources)))
	return dataSources, nil
}

// SeedCatalog inserts or refreshes the built-in catalog items
func (s *catalogService) SeedCatalog(ctx context.Context) (int, error) {
	if err := s.catalogRepo.Upsert(ctx, s.seed); err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.InfoContext(ctx, "catalog seeded", slog.Int("items", len(s.seed)))
	return len(s.seed), nil
}
