package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dataflow-backend/internal/database/drivers"
	"dataflow-backend/internal/middleware"
	"dataflow-backend/internal/model"
)

// DataSourceLookup loads a data source by id
type DataSourceLookup interface {
	GetByID(ctx context.Context, id string) (*model.DataSource, error)
}

// ConnectionTester checks whether a set of connection values reaches the
// external system behind a data source
type ConnectionTester struct {
	lookup   DataSourceLookup
	registry *DriverRegistry
	timeout  time.Duration
	logger   *slog.Logger
}

// TestResult represents the outcome of one connectivity probe
type TestResult struct {
	DataSourceID  string        `json:"dataSourceId,omitempty"`
	CatalogItemID string        `json:"catalogItemId"`
	Connected     bool          `json:"connected"`
	Message       string        `json:"message,omitempty"`
	Latency       time.Duration `json:"latency"`
	CheckedAt     time.Time     `json:"checkedAt"`
}

// NewConnectionTester creates a ConnectionTester. A non-positive timeout
// falls back to 30 seconds.
func NewConnectionTester(lookup DataSourceLookup, registry *DriverRegistry, timeout time.Duration, logger *slog.Logger) *ConnectionTester {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConnectionTester{
		lookup:   lookup,
		registry: registry,
		timeout:  timeout,
		logger:   logger,
	}
}

// TestConnection resolves the catalog item of the data source and probes it
// with values. Unreachable systems and rejected credentials yield false;
// malformed values, an unknown data source or an unsupported catalog item
// are returned as errors.
func (ct *ConnectionTester) TestConnection(ctx context.Context, dataSourceID string, values map[string]string) (bool, error) {
	dataSource, err := ct.lookup.GetByID(ctx, dataSourceID)
	if err != nil {
		return false, err
	}

	result, err := ct.Probe(ctx, dataSource.DataCatalogItemID, values)
	if err != nil {
		return false, fmt.Errorf("data source %s: %w", dataSourceID, err)
	}
	return result.Connected, nil
}

// Validate checks values against the driver of catalogItemID without
// opening a connection
func (ct *ConnectionTester) Validate(catalogItemID string, values map[string]string) error {
	_, _, err := ct.prepare(catalogItemID, values)
	return err
}

// SupportedCatalogItems returns the catalog items that can be probed
func (ct *ConnectionTester) SupportedCatalogItems() []string {
	return ct.registry.SupportedCatalogItems()
}

func (ct *ConnectionTester) prepare(catalogItemID string, values map[string]string) (drivers.Driver, *drivers.ConnectionSettings, error) {
	driver, err := ct.registry.GetDriver(catalogItemID)
	if err != nil {
		return nil, nil, err
	}

	settings, err := drivers.DecodeSettings(values)
	if err != nil {
		return nil, nil, err
	}
	if err := driver.Validate(settings); err != nil {
		return nil, nil, err
	}
	return driver, settings, nil
}

// Probe runs the driver of catalogItemID against values without touching any
// stored data source
func (ct *ConnectionTester) Probe(ctx context.Context, catalogItemID string, values map[string]string) (*TestResult, error) {
	driver, settings, err := ct.prepare(catalogItemID, values)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, ct.timeout)
	defer cancel()

	startTime := time.Now()
	result := &TestResult{
		CatalogItemID: catalogItemID,
		CheckedAt:     startTime,
	}

	err = driver.Ping(probeCtx, settings)
	result.Latency = time.Since(startTime)

	if errors.Is(err, drivers.ErrInvalidSettings) {
		return nil, err
	}

	if err != nil {
		result.Connected = false
		result.Message = fmt.Sprintf("Connection test failed: %v", err)
		ct.logger.WarnContext(ctx, "connectivity test failed",
			slog.String("catalog_item", catalogItemID),
			slog.Duration("latency", result.Latency),
			slog.Any("error", err),
		)
	} else {
		result.Connected = true
		result.Message = "Connection successful"
		ct.logger.InfoContext(ctx, "connectivity test succeeded",
			slog.String("catalog_item", catalogItemID),
			slog.Duration("latency", result.Latency),
		)
	}

	middleware.RecordConnectivityTest(catalogItemID, result.Connected, result.Latency)
	return result, nil
}
