package repository

import (
	"context"

	"dataflow-backend/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedCatalogRepository struct {
	inner CatalogRepository
	cache *lru.Cache[string, model.DataCatalogItem]
}

// NewCachedCatalogRepository wraps inner with an LRU cache for GetByID.
// The catalog changes only on seed, so Upsert purges the whole cache.
func NewCachedCatalogRepository(inner CatalogRepository, size int) (CatalogRepository, error) {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, model.DataCatalogItem](size)
	if err != nil {
		return nil, err
	}
	return &cachedCatalogRepository{inner: inner, cache: cache}, nil
}

func (r *cachedCatalogRepository) GetByID(ctx context.Context, id string) (*model.DataCatalogItem, error) {
	if item, ok := r.cache.Get(id); ok {
		item.ConnectionParameters = item.ConnectionParameters.Clone()
		return &item, nil
	}

	item, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cached := *item
	cached.ConnectionParameters = item.ConnectionParameters.Clone()
	r.cache.Add(id, cached)
	return item, nil
}

func (r *cachedCatalogRepository) List(ctx context.Context) ([]*model.DataCatalogItem, error) {
	return r.inner.List(ctx)
}

func (r *cachedCatalogRepository) Upsert(ctx context.Context, items []model.DataCatalogItem) error {
	defer r.cache.Purge()
	return r.inner.Upsert(ctx, items)
}
