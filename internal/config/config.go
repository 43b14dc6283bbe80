package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Image storage (MinIO/S3)
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`

	// Retention sweep
	SweepSchedule string `env:"SWEEP_SCHEDULE"`

	// Upload limits
	ImageMaxSizeMB int `env:"IMAGE_MAX_MB"`

	// Derived
	ServerURL string `env:"-"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address:port сервера")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.MinioEndpoint, "minio-endpoint", cfg.MinioEndpoint, "адрес MinIO/S3")
	flag.StringVar(&cfg.MinioAccessKey, "minio-access-key", cfg.MinioAccessKey, "ключ доступа MinIO")
	flag.StringVar(&cfg.MinioSecretKey, "minio-secret-key", cfg.MinioSecretKey, "секретный ключ MinIO")
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", cfg.MinioBucket, "бакет изображений")
	flag.BoolVar(&cfg.MinioUseSSL, "minio-ssl", cfg.MinioUseSSL, "MinIO по TLS")
	flag.StringVar(&cfg.SweepSchedule, "sweep-schedule", cfg.SweepSchedule, "расписание зачистки (cron)")
	flag.IntVar(&cfg.ImageMaxSizeMB, "image-max-mb", cfg.ImageMaxSizeMB, "лимит размера снимка, МБ")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.MinioBucket == "" {
		cfg.MinioBucket = "inspection-images"
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@every 24h"
	}
	if cfg.ImageMaxSizeMB <= 0 {
		cfg.ImageMaxSizeMB = 10
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}
