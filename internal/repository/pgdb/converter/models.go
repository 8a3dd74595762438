package converter

import "github.com/shopspring/decimal"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Цена хранится в NUMERIC(12,2), чтобы не терять копейки на double.
type ProductModel struct {
	Key         string          `db:"key"`
	ProductID   int64           `db:"product_id"`
	Name        string          `db:"name"`
	Brand       string          `db:"brand"`
	Category    string          `db:"category"`
	Price       decimal.Decimal `db:"price"`
	Rating      float64         `db:"rating"`
	Description string          `db:"description"`
	ImageURL    string          `db:"image_url"`
	Weight      string          `db:"weight"`
}
