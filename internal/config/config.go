package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/onerilhan/go-point-api/internal/models"
)

// Desteklenen store sürücüleri
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config ortam yapılandırmalarını tutar
type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StoreDriver   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	AutoMigrate   bool
	MemoryLatency time.Duration

	MaxBalance int64

	RateLimitPerMinute int
	RateLimitBurst     int
}

// yardımcı fonksiyon: ortam değişkeni yoksa default değeri döner
func getEnv(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt sayısal ortam değişkenini okur, parse edilemezse default döner
func getEnvInt(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

// LoadConfig tüm yapılandırmayı yükler
func LoadConfig() *Config {
	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver:   getEnv("STORE_DRIVER", StoreMemory),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "ilhan"),
		DBPass:        getEnv("DB_PASS", "password"),
		DBName:        getEnv("DB_NAME", "pointdb"),
		AutoMigrate:   getEnvBool("AUTO_MIGRATE", false),
		MemoryLatency: getEnvDuration("MEMORY_LATENCY", 0),

		MaxBalance: getEnvInt("MAX_BALANCE", models.DefaultMaxBalance),

		RateLimitPerMinute: int(getEnvInt("RATE_LIMIT_PER_MINUTE", 600)),
		RateLimitBurst:     int(getEnvInt("RATE_LIMIT_BURST", 50)),
	}
}

// Validate yapılandırmanın tutarlı olup olmadığını kontrol eder
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("geçersiz STORE_DRIVER: %q (memory veya postgres olmalı)", c.StoreDriver)
	}
	if c.MaxBalance < 1 {
		return fmt.Errorf("MAX_BALANCE pozitif olmalı: %d", c.MaxBalance)
	}
	if c.RateLimitPerMinute < 1 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit değerleri pozitif olmalı")
	}
	if c.MemoryLatency < 0 {
		return fmt.Errorf("MEMORY_LATENCY negatif olamaz")
	}
	return nil
}

// GetDSN veritabanı bağlantı URL'sini döner
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}
