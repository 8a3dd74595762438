package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FAKES

type fakeStore struct {
	products []domain.Product

	batchSizes []int
	batchErr   error
	listFn     func(filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error)
	updated    map[string]any
}

func (f *fakeStore) Create(ctx context.Context, product *domain.Product) (string, error) {
	f.products = append(f.products, *product)
	return "key-1", nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, products []domain.Product) ([]string, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	f.batchSizes = append(f.batchSizes, len(products))
	keys := make([]string, len(products))
	return keys, nil
}

func (f *fakeStore) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
	if f.listFn != nil {
		return f.listFn(filter, limit, offset)
	}
	return f.products, len(f.products), nil
}

func (f *fakeStore) Search(ctx context.Context, query string) ([]domain.Product, int, error) {
	matched := make([]domain.Product, 0)
	for _, p := range f.products {
		if p.MatchesQuery(query) {
			matched = append(matched, p)
		}
	}
	return matched, len(f.products), nil
}

func (f *fakeStore) GetByProductID(ctx context.Context, productID int64) (*domain.Product, string, error) {
	for _, p := range f.products {
		if p.ProductID == productID {
			return &p, "key-1", nil
		}
	}
	return nil, "", e.ErrProductNotFound
}

func (f *fakeStore) Update(ctx context.Context, productID int64, patch map[string]any) error {
	f.updated = patch
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, productID int64) error {
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[int64]domain.Product
	deleted []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]domain.Product)}
}

func (f *fakeCache) GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := f.entries[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeCache) SetProducts(ctx context.Context, products []domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range products {
		f.entries[p.ProductID] = p
	}
	return nil
}

func (f *fakeCache) DeleteProducts(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.entries, id)
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []domain.ProductEvent
}

func (f *fakeProducer) WriteMessage(ctx context.Context, event *domain.ProductEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeProducer) snapshot() []domain.ProductEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ProductEvent(nil), f.events...)
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func newUC(store *fakeStore, cache *fakeCache, producer *fakeProducer) *CatalogUseCase {
	var p MessageProducer
	if producer != nil {
		p = producer
	}
	return NewCatalogUC(store, cache, p, nil, nopLogger{})
}

// TESTS

func TestListProducts_Defaults(t *testing.T) {
	var gotLimit, gotOffset int
	store := &fakeStore{
		listFn: func(filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.Product{{ProductID: 1}}, 1, nil
		},
	}

	uc := newUC(store, newFakeCache(), nil)

	_, err := uc.ListProducts(context.Background(), NewListProductsReq(domain.ProductFilter{}, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 80, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = uc.ListProducts(context.Background(), NewListProductsReq(domain.ProductFilter{}, 10, 3))
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)
}

func TestListProducts_PageOverflow(t *testing.T) {
	var gotOffset int
	store := &fakeStore{
		listFn: func(filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
			gotOffset = offset
			return nil, 3, nil
		},
	}
	uc := newUC(store, newFakeCache(), nil)

	// page парсится из query и может быть сколь угодно большим;
	// произведение page*limit не должно уходить в минус
	_, err := uc.ListProducts(context.Background(),
		NewListProductsReq(domain.ProductFilter{}, 80, 1<<57))
	assert.ErrorIs(t, err, e.ErrNoMatchingProducts)
	assert.GreaterOrEqual(t, gotOffset, 0)
}

func TestListProducts_NotFoundKinds(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		store := &fakeStore{
			listFn: func(domain.ProductFilter, int, int) ([]domain.Product, int, error) {
				return nil, 0, nil
			},
		}
		_, err := newUC(store, newFakeCache(), nil).ListProducts(context.Background(),
			NewListProductsReq(domain.ProductFilter{}, 0, 0))
		assert.ErrorIs(t, err, e.ErrNoProducts)
	})

	t.Run("empty filtered page", func(t *testing.T) {
		store := &fakeStore{
			listFn: func(domain.ProductFilter, int, int) ([]domain.Product, int, error) {
				return nil, 7, nil
			},
		}
		_, err := newUC(store, newFakeCache(), nil).ListProducts(context.Background(),
			NewListProductsReq(domain.ProductFilter{}, 0, 0))
		assert.ErrorIs(t, err, e.ErrNoMatchingProducts)
	})
}

func TestSearchProducts(t *testing.T) {
	t.Run("empty collection is not found", func(t *testing.T) {
		uc := newUC(&fakeStore{}, newFakeCache(), nil)
		_, err := uc.SearchProducts(context.Background(), "tea")
		assert.ErrorIs(t, err, e.ErrNoProducts)
	})

	t.Run("no hits is an empty array", func(t *testing.T) {
		store := &fakeStore{products: []domain.Product{{ProductID: 1, Name: "Coffee"}}}
		uc := newUC(store, newFakeCache(), nil)

		items, err := uc.SearchProducts(context.Background(), "tea")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestBulkInsertProducts_Chunking(t *testing.T) {
	store := &fakeStore{}
	uc := newUC(store, newFakeCache(), nil)

	products := make([]domain.Product, 1200)
	count, err := uc.BulkInsertProducts(context.Background(), products)
	require.NoError(t, err)
	assert.Equal(t, 1200, count)
	assert.Equal(t, []int{500, 500, 200}, store.batchSizes)
}

func TestBulkInsertProducts_Empty(t *testing.T) {
	uc := newUC(&fakeStore{}, newFakeCache(), nil)

	_, err := uc.BulkInsertProducts(context.Background(), nil)
	assert.ErrorIs(t, err, e.ErrEmptyBulkRequest)
}

func TestBulkInsertProducts_ChunkFailureStops(t *testing.T) {
	store := &fakeStore{batchErr: errors.New("store down")}
	uc := newUC(store, newFakeCache(), nil)

	count, err := uc.BulkInsertProducts(context.Background(), make([]domain.Product, 600))
	require.Error(t, err)
	assert.Zero(t, count)
}

func TestGetProduct_CacheHitSkipsStore(t *testing.T) {
	cache := newFakeCache()
	require.NoError(t, cache.SetProducts(context.Background(),
		[]domain.Product{{ProductID: 5, Name: "Cached"}}))

	// пустое хранилище: попадание мимо кэша закончилось бы not found
	uc := newUC(&fakeStore{}, cache, nil)

	product, err := uc.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Cached", product.Name)
}

func TestGetProduct_MissFillsCache(t *testing.T) {
	store := &fakeStore{products: []domain.Product{{ProductID: 7, Name: "Fresh"}}}
	cache := newFakeCache()
	uc := newUC(store, cache, nil)

	product, err := uc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", product.Name)

	// дозаполнение кэша идёт в фоне
	assert.Eventually(t, func() bool {
		cached, err := cache.GetProducts(context.Background(), []int64{7})
		return err == nil && len(cached) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestUpdateProduct_InvalidatesCacheAndPublishes(t *testing.T) {
	store := &fakeStore{products: []domain.Product{{ProductID: 3}}}
	cache := newFakeCache()
	producer := &fakeProducer{}
	uc := newUC(store, cache, producer)

	err := uc.UpdateProduct(context.Background(), 3, map[string]any{domain.FieldPrice: 9.99})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, cache.deleted)

	assert.Eventually(t, func() bool {
		events := producer.snapshot()
		return len(events) == 1 && events[0].EventType == domain.ProductUpdated
	}, time.Second, 10*time.Millisecond)
}

func TestDeleteProduct_PublishesEvent(t *testing.T) {
	producer := &fakeProducer{}
	uc := newUC(&fakeStore{}, newFakeCache(), producer)

	require.NoError(t, uc.DeleteProduct(context.Background(), 9))

	assert.Eventually(t, func() bool {
		events := producer.snapshot()
		return len(events) == 1 &&
			events[0].EventType == domain.ProductDeleted &&
			events[0].ProductID == int64(9)
	}, time.Second, 10*time.Millisecond)
}

func TestAttachImage_Disabled(t *testing.T) {
	uc := newUC(&fakeStore{}, newFakeCache(), nil)

	_, err := uc.AttachImage(context.Background(), NewAttachImageReq(1, ProductImage{}))
	assert.ErrorIs(t, err, e.ErrImagesDisabled)
}
