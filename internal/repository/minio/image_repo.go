package minio

import (
	"bytes"
	"context"

	"github.com/jimlawless/whereami"
	m "github.com/minio/minio-go/v7"
	"github.com/shopsphere/catalog-service/internal/cfg"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/pkg/e"
)

// ImageRepo хранит изображения продуктов в MinIO.
type ImageRepo struct {
	mc  *m.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *m.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload кладёт изображение в бакет и возвращает ключ объекта.
func (r *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	opts := m.PutObjectOptions{}
	if image.ContentType != nil {
		opts.ContentType = *image.ContentType
	}

	var size int64 = -1
	if image.Size != nil {
		size = *image.Size
	}

	_, err := r.mc.PutObject(ctx, r.cfg.BucketName, image.ObjectKey,
		bytes.NewReader(image.Bytes), size, opts)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return image.ObjectKey, nil
}

// Delete удаляет объект из бакета по ключу.
func (r *ImageRepo) Delete(ctx context.Context, key string) error {
	err := r.mc.RemoveObject(ctx, r.cfg.BucketName, key, m.RemoveObjectOptions{})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
