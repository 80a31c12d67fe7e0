package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Translate TranslateConfig
	Sentiment SentimentConfig
	Analyze   AnalyzeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration for upload archiving
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// TranslateConfig holds the translation service configuration.
// The service speaks the LibreTranslate protocol.
type TranslateConfig struct {
	BaseURL    string        `envconfig:"TRANSLATE_BASE_URL" default:"http://localhost:5000"`
	APIKey     string        `envconfig:"TRANSLATE_API_KEY"`
	Source     string        `envconfig:"TRANSLATE_SOURCE" default:"es"`
	Target     string        `envconfig:"TRANSLATE_TARGET" default:"en"`
	Timeout    time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"10s"`
	MaxElapsed time.Duration `envconfig:"TRANSLATE_MAX_ELAPSED" default:"20s"`
	CacheTTL   time.Duration `envconfig:"TRANSLATE_CACHE_TTL" default:"24h"`
}

// SentimentConfig selects and configures the sentiment scorer backend
type SentimentConfig struct {
	Provider string        `envconfig:"SENTIMENT_PROVIDER" default:"vader"`
	BaseURL  string        `envconfig:"SENTIMENT_BASE_URL"`
	Timeout  time.Duration `envconfig:"SENTIMENT_TIMEOUT" default:"10s"`
}

// AnalyzeConfig holds pipeline tuning knobs
type AnalyzeConfig struct {
	Workers      int    `envconfig:"ANALYZE_WORKERS" default:"4"`
	CacheBackend string `envconfig:"ANALYZE_CACHE_BACKEND" default:"memory"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "coursepulse"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "coursepulse-uploads"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
	}

	// Service sections are decoded via struct tags
	if err := envconfig.Process("", &config.Translate); err != nil {
		return nil, fmt.Errorf("failed to load translate config: %w", err)
	}
	if err := envconfig.Process("", &config.Sentiment); err != nil {
		return nil, fmt.Errorf("failed to load sentiment config: %w", err)
	}
	if err := envconfig.Process("", &config.Analyze); err != nil {
		return nil, fmt.Errorf("failed to load analyze config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Sentiment.Provider {
	case "vader":
	case "http":
		if c.Sentiment.BaseURL == "" {
			return fmt.Errorf("SENTIMENT_BASE_URL is required when SENTIMENT_PROVIDER is http")
		}
	default:
		return fmt.Errorf("unknown SENTIMENT_PROVIDER %q (want vader or http)", c.Sentiment.Provider)
	}

	if c.Analyze.Workers < 1 {
		return fmt.Errorf("ANALYZE_WORKERS must be at least 1")
	}

	switch c.Analyze.CacheBackend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unknown ANALYZE_CACHE_BACKEND %q (want memory, redis or none)", c.Analyze.CacheBackend)
	}

	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
