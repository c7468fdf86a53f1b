package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Port        string
	BindAddress string
	DatabaseURL string
	DBPoolMin   int
	DBPoolMax   int
	RedisHost   string
	RedisPort   string
	SecretKey   string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		BindAddress: getEnv("BIND_ADDRESS", "localhost"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBPoolMin:   getEnvInt("DB_POOL_MIN", 1),
		DBPoolMax:   getEnvInt("DB_POOL_MAX", 10),
		RedisHost:   getEnv("REDIS_HOST", ""),
		RedisPort:   getEnv("REDIS_PORT", "6379"),
		SecretKey:   getEnv("SECRET_KEY", "super-secret-key-change-in-production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// InitRedis returns a Redis client, or nil when no Redis host is
// configured. Callers fall back to in-memory session storage when nil.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
}
