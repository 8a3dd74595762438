package firebasedb

import (
	"context"

	"firebase.google.com/go/v4/db"
	"github.com/jimlawless/whereami"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/repository/pushid"
	"github.com/shopsphere/catalog-service/pkg/e"
)

const productsPath = "products"

// ProductStore реализует хранилище каталога поверх Firebase Realtime Database.
// Листинг и поиск работают по схеме «забрать коллекцию целиком и отфильтровать
// в памяти»: RTDB не умеет составные серверные предикаты.
type ProductStore struct {
	client *db.Client
}

func NewProductStore(client *db.Client) *ProductStore {
	return &ProductStore{client: client}
}

func (s *ProductStore) ref() *db.Ref {
	return s.client.NewRef(productsPath)
}

// Create сохраняет запись под новым push-ключом и возвращает его.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) (string, error) {
	newRef, err := s.ref().Push(ctx, product)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return newRef.Key, nil
}

// InsertBatch записывает пачку одним multi-path update: либо вся пачка,
// либо ничего. Ключи генерируются локально, сетевых вызовов на ключ нет.
func (s *ProductStore) InsertBatch(ctx context.Context, products []domain.Product) ([]string, error) {
	updates := make(map[string]any, len(products))
	keys := make([]string, 0, len(products))

	for i := range products {
		key := pushid.New()
		keys = append(keys, key)
		updates[key] = products[i]
	}

	if err := s.ref().Update(ctx, updates); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return keys, nil
}

// List возвращает страницу отфильтрованной коллекции и её полный размер.
func (s *ProductStore) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
	all, total, err := s.fetchOrdered(ctx)
	if err != nil {
		return nil, 0, err
	}

	return paginate(filterProducts(all, filter), limit, offset), total, nil
}

// Search возвращает записи с вхождением query в название или бренд.
func (s *ProductStore) Search(ctx context.Context, query string) ([]domain.Product, int, error) {
	all, total, err := s.fetchOrdered(ctx)
	if err != nil {
		return nil, 0, err
	}

	return searchProducts(all, query), total, nil
}

// GetByProductID ищет запись индексным запросом по полю product_id.
// При дубликатах возвращается первая запись в порядке ключей.
func (s *ProductStore) GetByProductID(ctx context.Context, productID int64) (*domain.Product, string, error) {
	nodes, err := s.ref().OrderByChild(domain.FieldProductID).EqualTo(productID).LimitToFirst(1).GetOrdered(ctx)
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	if len(nodes) == 0 {
		return nil, "", e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	var product domain.Product
	if err := nodes[0].Unmarshal(&product); err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	return &product, nodes[0].Key(), nil
}

// Update выполняет частичное слияние patch в найденную запись.
func (s *ProductStore) Update(ctx context.Context, productID int64, patch map[string]any) error {
	_, key, err := s.GetByProductID(ctx, productID)
	if err != nil {
		return err
	}

	if len(patch) == 0 {
		return nil
	}

	if err := s.ref().Child(key).Update(ctx, patch); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет внутренний ключ найденной записи.
func (s *ProductStore) Delete(ctx context.Context, productID int64) error {
	_, key, err := s.GetByProductID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.ref().Child(key).Delete(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// fetchOrdered забирает коллекцию целиком в порядке внутренних ключей.
func (s *ProductStore) fetchOrdered(ctx context.Context) ([]domain.Product, int, error) {
	nodes, err := s.ref().OrderByKey().GetOrdered(ctx)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	items := make([]domain.Product, 0, len(nodes))
	for _, node := range nodes {
		var product domain.Product
		if err := node.Unmarshal(&product); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		items = append(items, product)
	}

	return items, len(items), nil
}
