package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all environment variables for the service.
type Config struct {
	Port    string
	GinMode string

	MongoURL string
	MongoDB  string

	// Cache backend: "memory" (default) or "redis".
	CacheBackend string
	RedisURL     string

	AdminSessionSecret string
	AdminPasswordHash  string
	AdminRoutePrefix   string

	AllowedOrigins string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	AlertRecipient    string
	LowStockThreshold int

	KafkaBrokers     string
	KafkaOrdersTopic string
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		MongoURL:           os.Getenv("MONGO_URL"),
		MongoDB:            getEnv("MONGO_DB", "life_accessories"),
		CacheBackend:       getEnv("CACHE_BACKEND", "memory"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		AdminSessionSecret: os.Getenv("ADMIN_SESSION_SECRET"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminRoutePrefix:   getEnv("ADMIN_ROUTE_PREFIX", "/backoffice-7f3a"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		AlertRecipient:     os.Getenv("ALERT_RECIPIENT"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaOrdersTopic:   getEnv("KAFKA_ORDERS_TOPIC", "orders.placed"),
	}

	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil || threshold < 1 {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must be a positive integer, got %q", v)
		}
		cfg.LowStockThreshold = threshold
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.AdminSessionSecret == "" {
		return nil, fmt.Errorf("ADMIN_SESSION_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("CACHE_BACKEND must be \"memory\" or \"redis\", got %q", cfg.CacheBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
