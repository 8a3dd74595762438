package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/shopsphere/catalog-service/pkg/e"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

// Драйверы хранилища каталога.
const (
	StoreDriverFirebase = "firebase"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Http     *HTTPConfig
	Store    *StoreCfg
	Firebase *FirebaseCfg
	Db       *PGDBCfg
	Redis    *RedisCfg
	Kafka    *KafkaCfg // nil — события отключены
	Minio    *MinIOCfg // nil — загрузка изображений отключена
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreCfg выбирает реализацию хранилища каталога.
type StoreCfg struct {
	Driver string
}

// FirebaseCfg — подключение к Firebase Realtime Database.
type FirebaseCfg struct {
	DatabaseURL     string
	CredentialsFile string // пустое значение — Application Default Credentials
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

type KafkaCfg struct {
	Topic       string
	Brokers     []string
	NetworkMode string
	MaxRetries  int
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	MaxImageSize      int64
}

// Load загружает конфигурацию из окружения и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	store, err := loadStoreCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cfg := &Config{
		Http:  loadHTTPConfig(),
		Store: store,
	}

	switch store.Driver {
	case StoreDriverFirebase:
		firebase, err := loadFirebaseCfg()
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cfg.Firebase = firebase
	case StoreDriverPostgres:
		db, err := loadPGDBCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		cfg.Db = db
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cfg.Redis = redis

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cfg.Kafka = kafka

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cfg.Minio = minio

	return cfg, nil
}

func loadStoreCfg() (*StoreCfg, error) {
	driver := getEnvOrDefault("STORE_DRIVER", StoreDriverFirebase)
	if driver != StoreDriverFirebase && driver != StoreDriverPostgres {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	return &StoreCfg{Driver: driver}, nil
}

func loadFirebaseCfg() (*FirebaseCfg, error) {
	dbURL := getEnv("FIREBASE_DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL environment variable is required")
	}

	return &FirebaseCfg{
		DatabaseURL:     dbURL,
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE"),
	}, nil
}

func loadHTTPConfig() *HTTPConfig {
	// 3300 — исторический порт каталога, его знают клиенты витрины.
	const (
		defaultPort         = "3300"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		readTimeout = defaultReadTimeout
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		writeTimeout = defaultWriteTimeout
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		idleTimeout = defaultIdleTimeout
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", getEnvOrDefault("PORT", defaultPort)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

// loadKafkaCfg возвращает nil без ошибки, если KAFKA_BROKERS не задан:
// публикация событий каталога опциональна.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic       = "catalog.product-events"
		defaultNetworkMode = "tcp"
		defaultMaxRetries  = 3
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	maxRetries, err := parseIntEnv("KAFKA_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_RETRIES", err)
	}

	return &KafkaCfg{
		Brokers:     strings.Split(brokerStr, ","),
		Topic:       getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		NetworkMode: getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		MaxRetries:  maxRetries,
	}, nil
}

// loadMinIOCfg возвращает nil без ошибки, если MINIO_ENDPOINT или BUCKET_NAME
// не заданы: эндпоинт загрузки изображений в этом случае не регистрируется.
func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL       = false
		defaultMaxImageSize = 15 << 20
	)

	endpoint := getEnv("MINIO_ENDPOINT")
	bucket := getEnv("BUCKET_NAME")
	if endpoint == "" || bucket == "" {
		return nil, nil
	}

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		MaxImageSize:      defaultMaxImageSize,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
