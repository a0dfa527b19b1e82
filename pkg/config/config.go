package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int
	// GRPCAddr is where the gateway dials the API.
	GRPCAddr string

	DBPath string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	ProductLimit int

	CacheBackend string
	CacheTTL     time.Duration
	CacheSize    int
	RedisAddr    string

	AMQPURL        string
	OutboxInterval time.Duration
	OutboxBatch    int
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),
		GRPCAddr: getEnv("GRPC_ADDR", "localhost:8081"),

		DBPath: getEnv("DB_PATH", "shop.db"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:    getEnvDuration("JWT_TTL", 2*time.Hour),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@email.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		ProductLimit: getEnvInt("PRODUCT_LIMIT", 10),

		CacheBackend: getEnv("CACHE_BACKEND", "lru"),
		CacheTTL:     getEnvDuration("CACHE_TTL", 30*time.Second),
		CacheSize:    getEnvInt("CACHE_SIZE", 256),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		OutboxInterval: getEnvDuration("OUTBOX_INTERVAL", 2*time.Second),
		OutboxBatch:    getEnvInt("OUTBOX_BATCH", 100),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
