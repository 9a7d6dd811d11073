package service

import (
	"context"
	"fmt"
	"log/slog"

	"dataflow-backend/internal/database"
	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"
	"dataflow-backend/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ConnectionTester reports whether values reach the system behind a data source
type ConnectionTester interface {
	TestConnection(ctx context.Context, dataSourceID string, values map[string]string) (bool, error)
}

// ConnectionProber runs a connectivity check for a catalog item without a
// stored data source
type ConnectionProber interface {
	Probe(ctx context.Context, catalogItemID string, values map[string]string) (*database.TestResult, error)
}

type DataSourceService interface {
	CreateDataSource(ctx context.Context, req *CreateDataSourceRequest) (*model.DataSource, error)
	UpdateConnectionParameters(ctx context.Context, req *UpdateConnectionRequest) (*model.DataSource, error)
	GetDataSource(ctx context.Context, id string) (*model.DataSource, error)
	ListDataSources(ctx context.Context, req *ListDataSourcesRequest) (*ListDataSourcesResponse, error)
	DeleteDataSource(ctx context.Context, id string) error
	TestConnection(ctx context.Context, id string, values map[string]string) (*database.TestResult, error)
}

type dataSourceService struct {
	repo     repository.DataSourceRepository
	tester   ConnectionTester
	prober   ConnectionProber
	validate *validator.Validate
	logger   *slog.Logger
}

type CreateDataSourceRequest struct {
	DataCatalogItemID    string                     `json:"data_catalog_item_id" validate:"required,max=64"`
	ConnectionParameters model.ConnectionParameters `json:"connection_parameters" validate:"unique=ID,dive"`
	Connected            bool                       `json:"connected"`
}

type UpdateConnectionRequest struct {
	ID                   string            `json:"id" validate:"required"`
	ConnectionParameters map[string]string `json:"connection_parameters"`
}

type ListDataSourcesRequest struct {
	DataCatalogItemID string `form:"data_catalog_item_id" validate:"omitempty,max=64"`
	Limit             int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset            int    `form:"offset" validate:"omitempty,min=0"`
}

type ListDataSourcesResponse struct {
	DataSources []*model.DataSource `json:"data_sources"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}

// NewDataSourceService creates a new instance of DataSourceService. prober
// may be nil, in which case TestConnection only works through tester.
func NewDataSourceService(repo repository.DataSourceRepository, tester ConnectionTester, prober ConnectionProber, logger *slog.Logger) DataSourceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dataSourceService{
		repo:     repo,
		tester:   tester,
		prober:   prober,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *dataSourceService) CreateDataSource(ctx context.Context, req *CreateDataSourceRequest) (*model.DataSource, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionValues, err)
	}

	dataSource := &model.DataSource{
		ID:                   utils.GenerateObjectID(),
		DataCatalogItemID:    req.DataCatalogItemID,
		ConnectionParameters: req.ConnectionParameters.Clone(),
		Connected:            req.Connected,
	}

	if err := s.repo.Create(ctx, dataSource); err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}

	s.logger.InfoContext(ctx, "data source created",
		slog.String("data_source_id", dataSource.ID),
		slog.String("catalog_item", dataSource.DataCatalogItemID),
	)
	return dataSource, nil
}

// UpdateConnectionParameters replaces the value of every stored parameter with
// the one supplied for its id, re-runs the connectivity test and persists both
// the new values and the test outcome. Nothing is written when a value is
// missing or the tester fails.
func (s *dataSourceService) UpdateConnectionParameters(ctx context.Context, req *UpdateConnectionRequest) (*model.DataSource, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionValues, err)
	}

	dataSource, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get data source: %w", err)
	}

	updated, err := dataSource.ConnectionParameters.WithValues(req.ConnectionParameters)
	if err != nil {
		return nil, err
	}

	values := utils.ListToMap(updated,
		func(p model.ConnectionParameter) string { return p.ID },
		func(p model.ConnectionParameter) string { return p.Value },
	)

	connected, err := s.tester.TestConnection(ctx, dataSource.ID, values)
	if err != nil {
		return nil, fmt.Errorf("connectivity test failed: %w", err)
	}

	dataSource.ConnectionParameters = updated
	dataSource.Connected = connected

	if err := s.repo.UpdateConnection(ctx, dataSource); err != nil {
		return nil, fmt.Errorf("failed to update data source: %w", err)
	}

	s.logger.InfoContext(ctx, "connection parameters updated",
		slog.String("data_source_id", dataSource.ID),
		slog.Bool("connected", connected),
	)
	return dataSource, nil
}

func (s *dataSourceService) GetDataSource(ctx context.Context, id string) (*model.DataSource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidUUID
	}

	dataSource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get data source: %w", err)
	}

	return dataSource, nil
}

func (s *dataSourceService) ListDataSources(ctx context.Context, req *ListDataSourcesRequest) (*ListDataSourcesResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	dataSources, total, err := s.repo.GetAll(ctx, req.DataCatalogItemID, req.Limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list data sources: %w", err)
	}

	return &ListDataSourcesResponse{
		DataSources: dataSources,
		Total:       total,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}, nil
}

func (s *dataSourceService) DeleteDataSource(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidUUID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete data source: %w", err)
	}

	s.logger.InfoContext(ctx, "data source deleted", slog.String("data_source_id", id))
	return nil
}

// TestConnection probes values against the catalog item of a stored data
// source. Nothing is persisted. Stored values fill in ids absent from values.
func (s *dataSourceService) TestConnection(ctx context.Context, id string, values map[string]string) (*database.TestResult, error) {
	dataSource, err := s.GetDataSource(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := utils.ListToMap(dataSource.ConnectionParameters,
		func(p model.ConnectionParameter) string { return p.ID },
		func(p model.ConnectionParameter) string { return p.Value },
	)
	for k, v := range values {
		merged[k] = v
	}

	if s.prober == nil {
		connected, err := s.tester.TestConnection(ctx, dataSource.ID, merged)
		if err != nil {
			return nil, err
		}
		return &database.TestResult{
			DataSourceID:  dataSource.ID,
			CatalogItemID: dataSource.DataCatalogItemID,
			Connected:     connected,
		}, nil
	}

	result, err := s.prober.Probe(ctx, dataSource.DataCatalogItemID, merged)
	if err != nil {
		return nil, err
	}
	result.DataSourceID = dataSource.ID
	return result, nil
}
