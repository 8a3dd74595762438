package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/shopsphere/catalog-service/internal/cfg"
	v1Http "github.com/shopsphere/catalog-service/internal/delivery/v1/http"
	"github.com/shopsphere/catalog-service/internal/infrastructure/images"
	"github.com/shopsphere/catalog-service/internal/infrastructure/kafka"
	"github.com/shopsphere/catalog-service/internal/repository/firebasedb"
	s3Repo "github.com/shopsphere/catalog-service/internal/repository/minio"
	"github.com/shopsphere/catalog-service/internal/repository/pgdb"
	pgdbConv "github.com/shopsphere/catalog-service/internal/repository/pgdb/converter"
	"github.com/shopsphere/catalog-service/internal/repository/redis"
	"github.com/shopsphere/catalog-service/internal/usecase"
	"github.com/shopsphere/catalog-service/pkg/clients"
	"github.com/shopsphere/catalog-service/pkg/closer"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/logger"
	"github.com/shopsphere/catalog-service/pkg/postgres"
)

const (
	shutdownTimeout  = 10 * time.Second
	ensureTimeout    = 10 * time.Second
	redisPingTimeout = 5 * time.Second
)

// App агрегирует собранные зависимости сервиса каталога.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv        *v1Http.Server
	shutdownCancel context.CancelFunc
}

// NewApp собирает зависимости по конфигурации: хранилище каталога,
// кэш, продьюсер событий и инфраструктуру изображений.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(2 * time.Second)

	// shutdownCtx живёт дольше запросов: его отмена прерывает
	// фоновые компенсации при остановке приложения.
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		cfg:            cfg,
		logger:         log,
		closer:         cl,
		shutdownCancel: shutdownCancel,
	}

	store, err := initStore(cfg, log, cl)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, cfg.Redis, log)

	// Типизированный nil в интерфейсном поле ломает проверки producer != nil,
	// поэтому интерфейсные переменные заполняются только при включённой подсистеме.
	var producer usecase.MessageProducer
	if cfg.Kafka != nil {
		kafkaProducer, err := kafka.NewProducer(log, cfg.Kafka)
		if err != nil {
			shutdownCancel()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if err := kafkaProducer.EnsureTopic(ensureTimeout); err != nil {
			log.Warnf("kafka topic check failed, producer may retry later: %v", err)
		}

		cl.Add(func(ctx context.Context) error {
			return kafkaProducer.Close()
		})
		producer = kafkaProducer
	}

	var imagesInfra usecase.ImagesInfra
	if cfg.Minio != nil {
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			shutdownCancel()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), ensureTimeout)
		if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
			minioCancel()
			shutdownCancel()
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		minioCancel()

		imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
		infra := images.NewInfra(imageRepo, cfg.Minio, log, shutdownCtx)

		cl.Add(func(ctx context.Context) error {
			return infra.WaitForCleanup(ctx)
		})
		imagesInfra = infra
	}

	catalogUC := usecase.NewCatalogUC(store, cacheRepo, producer, imagesInfra, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, imagesInfra != nil)

	app.httpSrv = v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return app.httpSrv.Stop(ctx)
	})

	return app, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки
// или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	} else {
		a.logger.Infof("Application shutdown complete")
	}
	a.shutdownCancel()

	return appErr
}

// initStore выбирает реализацию хранилища каталога по драйверу из конфигурации.
func initStore(cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.ProductStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := initPGDB(log, cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		cl.Add(func(ctx context.Context) error {
			db.Close()
			return nil
		})

		return pgdb.NewProductStore(db.Pool, pgdbConv.NewProductConverter()), nil
	case config.StoreDriverFirebase:
		ctx, cancel := context.WithTimeout(context.Background(), ensureTimeout)
		defer cancel()

		client, err := clients.NewFirebaseDB(ctx, cfg.Firebase)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		return firebasedb.NewProductStore(client), nil
	default:
		return nil, e.Wrap(cfg.Store.Driver, e.ErrIncorrectEnvVariable)
	}
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
