package usecase

import (
	"context"

	"github.com/shopsphere/catalog-service/internal/domain"
)

type MessageProducer interface {
	WriteMessage(ctx context.Context, event *domain.ProductEvent) error
}

type ImagesInfra interface {
	UploadImage(ctx context.Context, req *AttachImageReq) (string, error)
	CleanupImages(keys []string)
}
