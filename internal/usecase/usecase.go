package usecase

import (
	"context"

	"github.com/shopsphere/catalog-service/internal/domain"
)

type CatalogUC interface {
	CreateProduct(ctx context.Context, product *domain.Product) (string, error)
	BulkInsertProducts(ctx context.Context, products []domain.Product) (int, error)
	ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID int64, patch map[string]any) error
	DeleteProduct(ctx context.Context, productID int64) error
	AttachImage(ctx context.Context, req *AttachImageReq) (string, error)
}
