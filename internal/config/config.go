package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, populated from environment variables.
type Config struct {
	Env  string
	Port int

	// MySQL
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Redis
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	RedisPoolSize int

	// Auth
	JWTSecret   string
	JWTLifetime time.Duration

	// AI proxy (OpenAI-compatible chat completions endpoint)
	AIProxyURL string
	AIProxyKey string
	AIModel    string

	// CORS
	AllowedOrigins []string

	// Reminder scheduler
	ReminderInterval time.Duration
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnvInt("PORT", 8080),
		DBHost:           getEnv("DB_HOST", "127.0.0.1"),
		DBPort:           getEnvInt("DB_PORT", 3306),
		DBUser:           getEnv("DB_USER", "hireflow"),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", "hireflow"),
		RedisHost:        getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:        getEnvInt("REDIS_PORT", 6379),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTLifetime:      getEnvDuration("JWT_LIFETIME", 24*time.Hour),
		AIProxyURL:       getEnv("AI_PROXY_URL", ""),
		AIProxyKey:       getEnv("AI_PROXY_KEY", ""),
		AIModel:          getEnv("AI_MODEL", "gemini-2.5-flash"),
		AllowedOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		ReminderInterval: getEnvDuration("REMINDER_INTERVAL", 5*time.Second),
	}
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
