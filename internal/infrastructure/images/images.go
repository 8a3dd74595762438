package images

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopsphere/catalog-service/internal/cfg"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/usecase"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/jitter"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

const (
	cleanupAttempts    = 3
	cleanupBackoffBase = time.Second
	cleanupBackoffMax  = 8 * time.Second
	cleanupTimeout     = 30 * time.Second
)

// Infra управляет загрузкой и фоновой очисткой изображений продуктов.
type Infra struct {
	imageRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewInfra(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *Infra {
	return &Infra{
		imageRepo:   imageRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadImage загружает изображение продукта в объектное хранилище
// и возвращает ключ загруженного объекта.
func (i *Infra) UploadImage(ctx context.Context, req *usecase.AttachImageReq) (string, error) {
	const op = "Infra.UploadImage"

	ext, err := extensionFromMIME(req.Image.MimeType)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.Image.MimeType, req.Image.Name, err))
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("products/%d/%s.%s", req.ProductID, imageID, ext)
	image := domain.NewImage(imageID, i.cfg.BucketName, objKey, req.Image.Data, &req.Image.Size, &req.Image.MimeType)

	key, err := i.imageRepo.Upload(ctx, image)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", req.Image.Name, err))
	}

	return key, nil
}

// CleanupImages запускает фоновое удаление указанных ключей.
func (i *Infra) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	i.wg.Add(1)
	go i.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет объекты с экспоненциальной задержкой и jitter.
func (i *Infra) cleanupUploadedKeys(keys []string) {
	defer i.wg.Done()
	const op = "Infra.cleanupUploadedKeys"
	i.logger.Infof("%s: Cleaning up uploaded keys", op)

	ctx, cancel := context.WithTimeout(i.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			if err := i.imageRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				i.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			default:
			}

			if attempt < cleanupAttempts-1 {
				backoff := jitter.ExponentialBackoff(cleanupBackoffBase, cleanupBackoffMax, attempt+1, jitter.DefaultJitter)
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					i.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
					return
				}
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки
// с учётом таймаута завершения приложения.
func (i *Infra) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("image cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
