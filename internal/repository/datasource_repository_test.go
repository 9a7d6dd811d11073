package repository

import (
	"context"
	"testing"

	"dataflow-backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.DataSource{}, &model.DataCatalogItem{}))
	return db
}

func TestDataSourceRepository_CreateAndGet(t *testing.T) {
	repo := NewDataSourceRepository(newTestDB(t))
	ctx := context.Background()

	ds := &model.DataSource{
		DataCatalogItemID: model.CatalogItemPostgres,
		ConnectionParameters: model.ConnectionParameters{
			{ID: "host", Value: "a"},
			{ID: "port", Value: "1"},
		},
	}
	require.NoError(t, repo.Create(ctx, ds))
	require.NotEmpty(t, ds.ID)

	got, err := repo.GetByID(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CatalogItemPostgres, got.DataCatalogItemID)
	assert.Equal(t, []string{"host", "port"}, got.ConnectionParameters.IDs())
	assert.False(t, got.Connected)
}

func TestDataSourceRepository_GetByIDNotFound(t *testing.T) {
	repo := NewDataSourceRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrDataSourceNotFound)
}

func TestDataSourceRepository_UpdateConnection(t *testing.T) {
	repo := NewDataSourceRepository(newTestDB(t))
	ctx := context.Background()

	ds := &model.DataSource{
		DataCatalogItemID:    model.CatalogItemMySQL,
		ConnectionParameters: model.ConnectionParameters{{ID: "host", Value: "a"}},
		Connected:            true,
	}
	require.NoError(t, repo.Create(ctx, ds))

	ds.ConnectionParameters = model.ConnectionParameters{{ID: "host", Value: "b"}}
	ds.Connected = false
	require.NoError(t, repo.UpdateConnection(ctx, ds))

	got, err := repo.GetByID(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.ConnectionParameters[0].Value)
	assert.False(t, got.Connected)
}

func TestDataSourceRepository_UpdateConnectionMissing(t *testing.T) {
	repo := NewDataSourceRepository(newTestDB(t))

	ds := &model.DataSource{ID: "00000000-0000-0000-0000-000000000001"}
	err := repo.UpdateConnection(context.Background(), ds)
	assert.ErrorIs(t, err, ErrDataSourceNotFound)
}

func TestDataSourceRepository_GetAllAndDelete(t *testing.T) {
	repo := NewDataSourceRepository(newTestDB(t))
	ctx := context.Background()

	batch := []*model.DataSource{
		{DataCatalogItemID: model.CatalogItemPostgres},
		{DataCatalogItemID: model.CatalogItemPostgres},
		{DataCatalogItemID: model.CatalogItemBigQuery},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	all, total, err := repo.GetAll(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	pg, total, err := repo.GetAll(ctx, model.CatalogItemPostgres, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pg, 2)

	require.NoError(t, repo.Delete(ctx, batch[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, batch[0].ID), ErrDataSourceNotFound)
}
