package usecase

import "github.com/shopsphere/catalog-service/internal/domain"

// CATALOG USECASE

// ListProductsReq — запрос листинга каталога с фильтрами и пагинацией.
// Нулевые Limit и Page заменяются значениями по умолчанию (80 и 1).
type ListProductsReq struct {
	Filter domain.ProductFilter
	Limit  int
	Page   int
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// AttachImageReq — запрос на привязку изображения к продукту.
type AttachImageReq struct {
	ProductID int64
	Image     ProductImage
}

// MAPPERS

func NewListProductsReq(filter domain.ProductFilter, limit, page int) *ListProductsReq {
	return &ListProductsReq{
		Filter: filter,
		Limit:  limit,
		Page:   page,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewAttachImageReq(productID int64, image ProductImage) *AttachImageReq {
	return &AttachImageReq{
		ProductID: productID,
		Image:     image,
	}
}
