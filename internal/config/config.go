package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"basstatic/internal/cache"
	"basstatic/internal/database"
	"basstatic/internal/external"
	"basstatic/internal/messaging"
	"basstatic/internal/storage"
)

// Источники документа событий
const (
	DocumentSourceFile     = "file"
	DocumentSourceUpstream = "upstream"
)

// Хранилища медиафайлов
const (
	MediaBackendRepository = "repository"
	MediaBackendMinIO      = "minio"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// SiteDir is the deployed static site; media and data are served from it
	SiteDir        string
	DocumentPath   string
	DocumentSource string

	AdminPassword  string
	UploadMaxBytes int64
	MediaBackend   string

	MetricsEnabled bool

	Repository external.ContentsConfig
	Cache      cache.Config
	NATS       messaging.Config
	Database   database.Config
	MinIO      storage.MinIOConfig
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		SiteDir:        getEnv("SITE_DIR", "./site"),
		DocumentPath:   getEnv("DOCUMENT_PATH", "data/events.json"),
		DocumentSource: strings.ToLower(getEnv("DOCUMENT_SOURCE", DocumentSourceFile)),

		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_MB", 25)) << 20,
		MediaBackend:   strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendRepository)),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),

		Repository: external.ContentsConfig{
			BaseURL:   getEnv("GITHUB_API_URL", "https://api.github.com"),
			Token:     os.Getenv("GITHUB_TOKEN"),
			Repo:      os.Getenv("GITHUB_REPO"),
			Branch:    getEnv("GITHUB_BRANCH", "main"),
			UserAgent: getEnv("GITHUB_USER_AGENT", "basstatic-admin"),
			Timeout:   time.Duration(getEnvInt("GITHUB_TIMEOUT_SEC", 30)) * time.Second,
		},

		Cache: cache.Config{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			Key:      getEnv("REDIS_DOCUMENT_KEY", "basstatic:events"),
			TTL:      time.Duration(getEnvInt("REDIS_DOCUMENT_TTL_SEC", 300)) * time.Second,
		},

		NATS: messaging.Config{
			Enabled:   getEnvBool("NATS_ENABLED", false),
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "basstatic"),
			ClientID:  getEnv("NATS_CLIENT_ID", "basstatic-api"),
		},

		Database: database.Config{
			Enabled:            getEnvBool("DB_ENABLED", false),
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "basstatic"),
			Password:           getEnv("DB_PASSWORD", "basstatic"),
			DBName:             getEnv("DB_NAME", "basstatic"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
		},

		MinIO: storage.MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "basstatic-media"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// MinIOConfigured reports whether object store credentials are present
func (c *Config) MinIOConfigured() bool {
	return c.MinIO.Endpoint != "" && c.MinIO.AccessKey != "" && c.MinIO.SecretKey != ""
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool понимает true/false, 1/0, yes/no, on/off
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
