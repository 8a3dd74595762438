package domain

import "encoding/json"

// Канонические имена полей записи продукта. Исторически клиенты писали
// то name, то product_name; сервис принимает и отдаёт только product_name.
const (
	FieldProductID   = "product_id"
	FieldName        = "product_name"
	FieldBrand       = "product_brand"
	FieldCategory    = "product_category"
	FieldPrice       = "product_price"
	FieldRating      = "product_rating"
	FieldDescription = "product_description"
	FieldImageURL    = "product_image_url"
	FieldWeight      = "product_weight"
)

// Product описывает запись каталога. ProductID — внешний публичный
// идентификатор; внутренний ключ хранилища продукту не принадлежит
// и живёт на границе репозитория.
//
// Уникальность ProductID сервис не гарантирует: при дубликатах операции
// по идентификатору работают с первой записью в порядке внутренних ключей.
type Product struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"product_name"`
	Brand       string  `json:"product_brand,omitempty"`
	Category    string  `json:"product_category,omitempty"`
	Price       float64 `json:"product_price"`
	Rating      float64 `json:"product_rating"`
	Description string  `json:"product_description,omitempty"`
	ImageURL    string  `json:"product_image_url,omitempty"`
	Weight      Weight  `json:"product_weight,omitempty"`
}

// Weight хранит product_weight как есть: клиенты исторически шлют
// и строки ("1.2 kg"), и числа (350). Наружу поле всегда уходит строкой.
type Weight string

func (w *Weight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = Weight(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = Weight(n.String())

	return nil
}

// UnmarshalJSON принимает устаревший ключ name как синоним product_name
// на пути записи; при обоих ключах канонический product_name побеждает.
func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	aux := struct {
		*product
		LegacyName string `json:"name"`
	}{product: (*product)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if p.Name == "" {
		p.Name = aux.LegacyName
	}

	return nil
}

func NewProduct(productID int64, name string, brand string, category string, price float64, rating float64) *Product {
	return &Product{
		ProductID: productID,
		Name:      name,
		Brand:     brand,
		Category:  category,
		Price:     price,
		Rating:    rating,
	}
}
