package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dataflow-backend/internal/database/drivers"
	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	id       string
	pingErr  error
	settings *drivers.ConnectionSettings
	deadline bool
}

func (d *fakeDriver) CatalogItemID() string { return d.id }

func (d *fakeDriver) Validate(settings *drivers.ConnectionSettings) error {
	if settings.Host == "" {
		return fmt.Errorf("%w: host is required", drivers.ErrInvalidSettings)
	}
	return nil
}

func (d *fakeDriver) Ping(ctx context.Context, settings *drivers.ConnectionSettings) error {
	d.settings = settings
	_, d.deadline = ctx.Deadline()
	return d.pingErr
}

type fakeLookup map[string]*model.DataSource

func (l fakeLookup) GetByID(_ context.Context, id string) (*model.DataSource, error) {
	if ds, ok := l[id]; ok {
		return ds, nil
	}
	return nil, repository.ErrDataSourceNotFound
}

func newTester(driver *fakeDriver) *ConnectionTester {
	registry := NewDriverRegistry()
	registry.Register(driver)
	lookup := fakeLookup{
		"ds-1": {ID: "ds-1", DataCatalogItemID: driver.id},
		"ds-2": {ID: "ds-2", DataCatalogItemID: "unsupported"},
	}
	return NewConnectionTester(lookup, registry, time.Second, nil)
}

func TestConnectionTester_Connected(t *testing.T) {
	driver := &fakeDriver{id: "fake"}
	tester := newTester(driver)

	connected, err := tester.TestConnection(context.Background(), "ds-1", map[string]string{"host": "db", "port": "5432"})
	require.NoError(t, err)
	assert.True(t, connected)
	assert.Equal(t, "db", driver.settings.Host)
	assert.Equal(t, 5432, driver.settings.Port)
	assert.True(t, driver.deadline)
}

func TestConnectionTester_Unreachable(t *testing.T) {
	driver := &fakeDriver{id: "fake", pingErr: errors.New("connection refused")}
	tester := newTester(driver)

	connected, err := tester.TestConnection(context.Background(), "ds-1", map[string]string{"host": "db"})
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestConnectionTester_Errors(t *testing.T) {
	tester := newTester(&fakeDriver{id: "fake"})
	ctx := context.Background()

	_, err := tester.TestConnection(ctx, "missing", map[string]string{"host": "db"})
	assert.ErrorIs(t, err, repository.ErrDataSourceNotFound)

	_, err = tester.TestConnection(ctx, "ds-2", map[string]string{"host": "db"})
	assert.ErrorIs(t, err, ErrUnsupportedCatalogItem)

	_, err = tester.TestConnection(ctx, "ds-1", map[string]string{})
	assert.ErrorIs(t, err, drivers.ErrInvalidSettings)

	_, err = tester.TestConnection(ctx, "ds-1", map[string]string{"host": "db", "port": "abc"})
	assert.ErrorIs(t, err, drivers.ErrInvalidSettings)
}

func TestConnectionTester_PingInvalidSettingsIsError(t *testing.T) {
	driver := &fakeDriver{id: "fake", pingErr: fmt.Errorf("%w: bad key", drivers.ErrInvalidSettings)}
	tester := newTester(driver)

	_, err := tester.TestConnection(context.Background(), "ds-1", map[string]string{"host": "db"})
	assert.ErrorIs(t, err, drivers.ErrInvalidSettings)
}

func TestConnectionTester_Probe(t *testing.T) {
	tester := newTester(&fakeDriver{id: "fake"})

	result, err := tester.Probe(context.Background(), "fake", map[string]string{"host": "db"})
	require.NoError(t, err)
	assert.True(t, result.Connected)
	assert.Equal(t, "fake", result.CatalogItemID)
	assert.Equal(t, "Connection successful", result.Message)
}

func TestConnectionTester_Validate(t *testing.T) {
	driver := &fakeDriver{id: "fake"}
	tester := newTester(driver)

	assert.NoError(t, tester.Validate("fake", map[string]string{"host": "db"}))
	assert.ErrorIs(t, tester.Validate("fake", map[string]string{}), drivers.ErrInvalidSettings)
	assert.ErrorIs(t, tester.Validate("mongo", map[string]string{"host": "db"}), ErrUnsupportedCatalogItem)
	assert.Nil(t, driver.settings, "validate must not ping")
	assert.Equal(t, []string{"fake"}, tester.SupportedCatalogItems())
}

func TestDefaultDriverRegistry(t *testing.T) {
	registry := NewDefaultDriverRegistry(5 * time.Second)

	for _, item := range model.DefaultCatalog() {
		assert.True(t, registry.IsSupported(item.ID), "catalog item %s has no driver", item.ID)
	}
	assert.Equal(t, len(model.DefaultCatalog()), len(registry.SupportedCatalogItems()))

	_, err := registry.GetDriver("mongo")
	assert.ErrorIs(t, err, ErrUnsupportedCatalogItem)
}
