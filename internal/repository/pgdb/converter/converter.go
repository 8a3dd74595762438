package converter

import (
	"github.com/shopspring/decimal"
	"github.com/shopsphere/catalog-service/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() *ProductConverter {
	return &ProductConverter{}
}

func (c *ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ProductID:   entity.ProductID,
		Name:        entity.Name,
		Brand:       entity.Brand,
		Category:    entity.Category,
		Price:       decimal.NewFromFloat(entity.Price),
		Rating:      entity.Rating,
		Description: entity.Description,
		ImageURL:    entity.ImageURL,
		Weight:      string(entity.Weight),
	}
}

func (c *ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ProductID:   model.ProductID,
		Name:        model.Name,
		Brand:       model.Brand,
		Category:    model.Category,
		Price:       model.Price.InexactFloat64(),
		Rating:      model.Rating,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		Weight:      domain.Weight(model.Weight),
	}
}

func (c *ProductConverter) ToArrEntity(models []*ProductModel) []domain.Product {
	result := make([]domain.Product, 0, len(models))
	for _, model := range models {
		result = append(result, *c.ToEntity(model))
	}

	return result
}
