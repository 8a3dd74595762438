package usecase

import (
	"context"

	"github.com/shopsphere/catalog-service/internal/domain"
)

// ProductStore — контракт хранилища каталога. Записи адресуются внутренним
// ключом хранилища (порядок ключей — порядок создания) и публичным product_id.
type ProductStore interface {
	// Create сохраняет запись под новым внутренним ключом и возвращает его.
	Create(ctx context.Context, product *domain.Product) (string, error)

	// InsertBatch записывает пачку как одну атомарную операцию хранилища.
	// Разбиение на пачки — забота вызывающего.
	InsertBatch(ctx context.Context, products []domain.Product) ([]string, error)

	// List возвращает страницу записей, прошедших фильтр, в порядке внутренних
	// ключей, и общее число записей коллекции без учёта фильтра.
	List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error)

	// Search возвращает записи, чьё название или бренд содержат подстроку
	// query, без пагинации, и общее число записей коллекции.
	Search(ctx context.Context, query string) ([]domain.Product, int, error)

	// GetByProductID находит запись по полю product_id. При дубликатах
	// возвращается первая запись в порядке внутренних ключей.
	GetByProductID(ctx context.Context, productID int64) (*domain.Product, string, error)

	// Update частично обновляет найденную по product_id запись:
	// поля, отсутствующие в patch, не затрагиваются.
	Update(ctx context.Context, productID int64, patch map[string]any) error

	// Delete удаляет найденную по product_id запись целиком.
	Delete(ctx context.Context, productID int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
