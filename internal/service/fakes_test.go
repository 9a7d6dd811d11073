package service

import (
	"context"
	"errors"
	"sort"

	"dataflow-backend/internal/database"
	"dataflow-backend/internal/model"
	"dataflow-backend/internal/repository"
)

type fakeDataSourceRepo struct {
	items   map[string]*model.DataSource
	updates int
	failOn  string
}

func newFakeDataSourceRepo(items ...*model.DataSource) *fakeDataSourceRepo {
	repo := &fakeDataSourceRepo{items: map[string]*model.DataSource{}}
	for _, ds := range items {
		repo.items[ds.ID] = ds
	}
	return repo
}

func (r *fakeDataSourceRepo) stored(id string) *model.DataSource {
	ds := *r.items[id]
	ds.ConnectionParameters = ds.ConnectionParameters.Clone()
	return &ds
}

func (r *fakeDataSourceRepo) Create(_ context.Context, ds *model.DataSource) error {
	if r.failOn == "create" {
		return errors.New("insert failed")
	}
	copied := *ds
	copied.ConnectionParameters = ds.ConnectionParameters.Clone()
	r.items[ds.ID] = &copied
	return nil
}

func (r *fakeDataSourceRepo) CreateBatch(ctx context.Context, dataSources []*model.DataSource) error {
	if r.failOn == "batch" {
		return errors.New("insert failed")
	}
	for _, ds := range dataSources {
		if err := r.Create(ctx, ds); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeDataSourceRepo) GetByID(_ context.Context, id string) (*model.DataSource, error) {
	if _, ok := r.items[id]; !ok {
		return nil, repository.ErrDataSourceNotFound
	}
	return r.stored(id), nil
}

func (r *fakeDataSourceRepo) GetAll(_ context.Context, catalogItemID string, limit, offset int) ([]*model.DataSource, int64, error) {
	ids := make([]string, 0, len(r.items))
	for id, ds := range r.items {
		if catalogItemID == "" || ds.DataCatalogItemID == catalogItemID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []*model.DataSource
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, r.stored(ids[i]))
	}
	return out, int64(len(ids)), nil
}

func (r *fakeDataSourceRepo) UpdateConnection(_ context.Context, ds *model.DataSource) error {
	if r.failOn == "update" {
		return errors.New("commit failed")
	}
	if _, ok := r.items[ds.ID]; !ok {
		return repository.ErrDataSourceNotFound
	}
	r.updates++
	stored := r.items[ds.ID]
	stored.ConnectionParameters = ds.ConnectionParameters.Clone()
	stored.Connected = ds.Connected
	return nil
}

func (r *fakeDataSourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrDataSourceNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeCatalogRepo struct {
	items    map[string]model.DataCatalogItem
	upserted int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	repo := &fakeCatalogRepo{items: map[string]model.DataCatalogItem{}}
	for _, item := range model.DefaultCatalog() {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeCatalogRepo) GetByID(_ context.Context, id string) (*model.DataCatalogItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrCatalogItemNotFound
	}
	return &item, nil
}

func (r *fakeCatalogRepo) List(_ context.Context) ([]*model.DataCatalogItem, error) {
	out := make([]*model.DataCatalogItem, 0, len(r.items))
	for _, item := range r.items {
		item := item
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCatalogRepo) Upsert(_ context.Context, items []model.DataCatalogItem) error {
	for _, item := range items {
		r.items[item.ID] = item
	}
	r.upserted += len(items)
	return nil
}

// fakeTester returns a fixed outcome and records the last call
type fakeTester struct {
	connected bool
	err       error
	calls     int
	lastID    string
	lastVals  map[string]string
}

func (t *fakeTester) TestConnection(_ context.Context, dataSourceID string, values map[string]string) (bool, error) {
	t.calls++
	t.lastID = dataSourceID
	t.lastVals = values
	return t.connected, t.err
}

type fakeProber struct {
	lastCatalogItem string
	lastVals        map[string]string
}

func (p *fakeProber) Probe(_ context.Context, catalogItemID string, values map[string]string) (*database.TestResult, error) {
	p.lastCatalogItem = catalogItemID
	p.lastVals = values
	return &database.TestResult{CatalogItemID: catalogItemID, Connected: true, Message: "Connection successful"}, nil
}
