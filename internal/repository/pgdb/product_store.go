package pgdb

import (
	"context"
	"errors"
	"fmt"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/repository/pgdb/converter"
	"github.com/shopsphere/catalog-service/internal/repository/pushid"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/tr"
)

const productColumns = "key, product_id, name, brand, category, price, rating, description, image_url, weight"

// firstMatchSubquery выбирает внутренний ключ первой записи с данным
// product_id: уникальность product_id сервис не гарантирует,
// операции по идентификатору работают по принципу «первое совпадение».
const firstMatchSubquery = "(SELECT key FROM products WHERE product_id = $1 ORDER BY key LIMIT 1)"

// ProductStore реализует хранилище каталога поверх PostgreSQL.
// В отличие от RTDB-драйвера, предикаты листинга и поиска уходят в SQL.
type ProductStore struct {
	pool *pgxpool.Pool
	conv *converter.ProductConverter
}

func NewProductStore(pool *pgxpool.Pool, conv *converter.ProductConverter) *ProductStore {
	return &ProductStore{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет запись под новым push-ключом и возвращает его.
func (p *ProductStore) Create(ctx context.Context, product *domain.Product) (string, error) {
	key := pushid.New()

	query := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, productColumns)

	model := p.conv.ToModel(product)
	_, err := p.pool.Exec(ctx, query,
		key, model.ProductID, model.Name, model.Brand, model.Category,
		model.Price, model.Rating, model.Description, model.ImageURL, model.Weight,
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return key, nil
}

// InsertBatch записывает пачку в одной транзакции: либо вся пачка, либо ничего.
func (p *ProductStore) InsertBatch(ctx context.Context, products []domain.Product) ([]string, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.pool)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	keys := make([]string, 0, len(products))
	for i := range products {
		var key string
		key, err = p.insertInTx(ctx, &products[i])
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		keys = append(keys, key)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return keys, nil
}

// List возвращает страницу отфильтрованной коллекции и её полный размер.
func (p *ProductStore) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
	total, err := p.countAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	where, args := listConditions(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY key
		OFFSET $%d LIMIT $%d
	`, productColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	items, err := p.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Search возвращает записи с вхождением query в название или бренд.
func (p *ProductStore) Search(ctx context.Context, query string) ([]domain.Product, int, error) {
	total, err := p.countAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE name ILIKE $1 OR brand ILIKE $1
		ORDER BY key
	`, productColumns)

	items, err := p.queryProducts(ctx, sql, likePattern(query))
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByProductID возвращает первую запись с данным product_id в порядке ключей.
func (p *ProductStore) GetByProductID(ctx context.Context, productID int64) (*domain.Product, string, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE product_id = $1
		ORDER BY key
		LIMIT 1
	`, productColumns)

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, productID).Scan(
		&model.Key, &model.ProductID, &model.Name, &model.Brand, &model.Category,
		&model.Price, &model.Rating, &model.Description, &model.ImageURL, &model.Weight,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), model.Key, nil
}

// Update частично обновляет найденную запись: затрагиваются только колонки,
// присутствующие в patch.
func (p *ProductStore) Update(ctx context.Context, productID int64, patch map[string]any) error {
	sets, args := patchAssignments(patch, 2)
	if sets == "" {
		// Ни одного известного поля: осталась только проверка существования.
		_, _, err := p.GetByProductID(ctx, productID)
		return err
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE key = %s
		RETURNING key
	`, sets, firstMatchSubquery)

	var key string
	err := p.pool.QueryRow(ctx, query, append([]any{productID}, args...)...).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет найденную запись вместе с её ключом.
func (p *ProductStore) Delete(ctx context.Context, productID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM products
		WHERE key = %s
		RETURNING key
	`, firstMatchSubquery)

	var key string
	err := p.pool.QueryRow(ctx, query, productID).Scan(&key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductStore) insertInTx(ctx context.Context, product *domain.Product) (string, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	key := pushid.New()
	query := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, productColumns)

	model := p.conv.ToModel(product)
	_, err = tx.Exec(ctx, query,
		key, model.ProductID, model.Name, model.Brand, model.Category,
		model.Price, model.Rating, model.Description, model.ImageURL, model.Weight,
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return key, nil
}

func (p *ProductStore) countAll(ctx context.Context) (int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, "SELECT count(*) FROM products").Scan(&total); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return total, nil
}

func (p *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.Key, &model.ProductID, &model.Name, &model.Brand, &model.Category,
			&model.Price, &model.Rating, &model.Description, &model.ImageURL, &model.Weight,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}
