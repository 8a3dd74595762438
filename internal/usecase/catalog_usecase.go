package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

const (
	// defaultLimit — размер страницы листинга по умолчанию.
	defaultLimit = 80

	// bulkChunkSize — размер пачки при массовой вставке: каждая пачка
	// уходит в хранилище одной атомарной операцией.
	bulkChunkSize = 500

	cacheFillTimeout = 500 * time.Millisecond
	eventTimeout     = 5 * time.Second
)

// CatalogUseCase реализует бизнес-логику каталога продуктов.
type CatalogUseCase struct {
	store       ProductStore
	cacheRepo   CacheRepository
	producer    MessageProducer // nil — события отключены
	imagesInfra ImagesInfra     // nil — изображения отключены
	logger      logger.Logger
}

func NewCatalogUC(
	store ProductStore,
	cacheRepo CacheRepository,
	producer MessageProducer,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		store:       store,
		cacheRepo:   cacheRepo,
		producer:    producer,
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

// CreateProduct сохраняет одну запись и возвращает её внутренний ключ.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, product *domain.Product) (string, error) {
	const op = "CatalogUseCase.CreateProduct"

	key, err := c.store.Create(ctx, product)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	// Под этим product_id могла быть закэширована другая запись.
	c.invalidateCache(ctx, []int64{product.ProductID})
	c.publishEvent(domain.ProductCreated, product.ProductID, 0)

	return key, nil
}

// BulkInsertProducts записывает продукты пачками по bulkChunkSize: каждая
// пачка — одна атомарная операция хранилища, пачки идут последовательно.
// Ошибка на пачке прерывает остальные; уже записанные пачки не откатываются.
func (c *CatalogUseCase) BulkInsertProducts(ctx context.Context, products []domain.Product) (int, error) {
	const op = "CatalogUseCase.BulkInsertProducts"

	if len(products) == 0 {
		return 0, e.Wrap(op, e.ErrEmptyBulkRequest)
	}

	inserted := 0
	for start := 0; start < len(products); start += bulkChunkSize {
		end := start + bulkChunkSize
		if end > len(products) {
			end = len(products)
		}

		keys, err := c.store.InsertBatch(ctx, products[start:end])
		if err != nil {
			return inserted, e.Wrap(op, err)
		}
		inserted += len(keys)
	}

	ids := make([]int64, len(products))
	for i := range products {
		ids[i] = products[i].ProductID
	}
	c.invalidateCache(ctx, ids)
	c.publishEvent(domain.ProductBulkInserted, 0, inserted)

	return inserted, nil
}

// ListProducts возвращает страницу каталога, прошедшую фильтры.
// Пустая коллекция и пустая страница различаются ошибками
// e.ErrNoProducts и e.ErrNoMatchingProducts.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	// Номер страницы парсится из query и может быть сколь угодно большим:
	// произведение не должно перепрыгнуть через край int.
	offset := (page - 1) * limit
	if offset < 0 || offset/limit != page-1 {
		offset = math.MaxInt - limit
	}

	items, total, err := c.store.List(ctx, req.Filter, limit, offset)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if total == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}
	if len(items) == 0 {
		return nil, e.Wrap(op, e.ErrNoMatchingProducts)
	}

	return items, nil
}

// SearchProducts ищет записи по подстроке в названии или бренде.
// Пустой результат поиска — не ошибка; 404 только у пустой коллекции.
func (c *CatalogUseCase) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	const op = "CatalogUseCase.SearchProducts"

	items, total, err := c.store.Search(ctx, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if total == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	if items == nil {
		items = []domain.Product{}
	}

	return items, nil
}

// GetProduct возвращает запись по product_id, сначала проверяя кэш.
// Промах кэша дочитывается из хранилища и дозаполняется в фоне.
func (c *CatalogUseCase) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	cached, err := c.cacheRepo.GetProducts(ctx, []int64{productID})
	if err == nil {
		if product, ok := cached[productID]; ok {
			return &product, nil
		}
	}

	product, _, err := c.store.GetByProductID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, []domain.Product{*product}); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// UpdateProduct частично обновляет запись: поля, отсутствующие в patch,
// остаются нетронутыми.
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, productID int64, patch map[string]any) error {
	const op = "CatalogUseCase.UpdateProduct"

	if err := c.store.Update(ctx, productID, patch); err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCache(ctx, []int64{productID})
	c.publishEvent(domain.ProductUpdated, productID, 0)

	return nil
}

// DeleteProduct удаляет запись вместе с её внутренним ключом.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, productID int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	if err := c.store.Delete(ctx, productID); err != nil {
		return e.Wrap(op, err)
	}

	c.invalidateCache(ctx, []int64{productID})
	c.publishEvent(domain.ProductDeleted, productID, 0)

	return nil
}

// AttachImage загружает изображение в объектное хранилище и прописывает
// его ключ в product_image_url записи. Прежний объект удаляется в фоне.
func (c *CatalogUseCase) AttachImage(ctx context.Context, req *AttachImageReq) (string, error) {
	const op = "CatalogUseCase.AttachImage"

	if c.imagesInfra == nil {
		return "", e.Wrap(op, e.ErrImagesDisabled)
	}

	product, _, err := c.store.GetByProductID(ctx, req.ProductID)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	key, err := c.imagesInfra.UploadImage(ctx, req)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	if err := c.store.Update(ctx, req.ProductID, map[string]any{domain.FieldImageURL: key}); err != nil {
		c.imagesInfra.CleanupImages([]string{key})
		return "", e.Wrap(op, err)
	}

	// Внешние URL не трогаем, подчищаем только собственные объектные ключи.
	if old := product.ImageURL; strings.HasPrefix(old, "products/") && old != key {
		c.imagesInfra.CleanupImages([]string{old})
	}

	c.invalidateCache(ctx, []int64{req.ProductID})
	c.publishEvent(domain.ProductUpdated, req.ProductID, 0)

	return key, nil
}

// invalidateCache убирает записи из кэша; ошибки кэша не фатальны.
func (c *CatalogUseCase) invalidateCache(ctx context.Context, ids []int64) {
	if err := c.cacheRepo.DeleteProducts(ctx, ids); err != nil {
		c.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
}

// publishEvent асинхронно публикует событие изменения каталога.
// Публикация best-effort: отказ брокера не влияет на результат запроса.
func (c *CatalogUseCase) publishEvent(eventType domain.ProductEventType, productID int64, count int) {
	if c.producer == nil {
		return
	}

	event := &domain.ProductEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		ProductID:  productID,
		Count:      count,
		OccurredAt: time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()

		if err := c.producer.WriteMessage(ctx, event); err != nil {
			c.logger.Warnf("Failed to publish %s event: %v", eventType, err)
		}
	}()
}
