package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ServiceName identifies the service in logs, metrics and traces
	ServiceName = "todo-backend"
	// Version is reported by the root endpoint
	Version = "2.0.0"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress  string        `yaml:"server_address"`
	Environment    string        `yaml:"environment"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// AWS configuration
	AWSRegion          string `yaml:"aws_region"`
	TableName          string `yaml:"table_name"`
	DynamoDBEndpoint   string `yaml:"dynamodb_endpoint"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"`

	// Table provisioning
	AutoCreateTable  bool          `yaml:"auto_create_table"`
	TableWaitTimeout time.Duration `yaml:"table_wait_timeout"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Cache
	EnableCache   bool          `yaml:"enable_cache"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	// Tracing
	EnableTracing bool   `yaml:"enable_tracing"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`

	// Feature flags
	EnableMetrics         bool     `yaml:"enable_metrics"`
	EnableCORS            bool     `yaml:"enable_cors"`
	CORSAllowedOrigins    []string `yaml:"cors_allowed_origins"`
	CircuitBreakerEnabled bool     `yaml:"circuit_breaker_enabled"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerAddress:         ":8000",
		Environment:           "development",
		RequestTimeout:        30 * time.Second,
		AWSRegion:             "ap-northeast-1",
		TableName:             "Todos",
		AWSAccessKeyID:        "dummy",
		AWSSecretAccessKey:    "dummy",
		AutoCreateTable:       true,
		TableWaitTimeout:      2 * time.Minute,
		LogLevel:              "info",
		CacheTTL:              60 * time.Second,
		EnableMetrics:         true,
		EnableCORS:            true,
		CORSAllowedOrigins:    []string{"*"},
		CircuitBreakerEnabled: true,
	}
}

// LoadConfig loads configuration from, in increasing priority, built-in
// defaults, the YAML file named by CONFIG_FILE, and environment variables.
// A .env file in the working directory is read first when present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout)

	c.AWSRegion = getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", c.AWSRegion))
	c.TableName = getEnv("TABLE_NAME", c.TableName)
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", c.AWSAccessKeyID)
	c.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", c.AWSSecretAccessKey)

	c.AutoCreateTable = getEnvBool("AUTO_CREATE_TABLE", c.AutoCreateTable)
	c.TableWaitTimeout = getEnvDuration("TABLE_WAIT_TIMEOUT", c.TableWaitTimeout)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.EnableCache = getEnvBool("ENABLE_CACHE", c.EnableCache)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.CacheTTL = getEnvDuration("CACHE_TTL", c.CacheTTL)

	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		c.CORSAllowedOrigins = splitList(origins)
	}
	c.CircuitBreakerEnabled = getEnvBool("CIRCUIT_BREAKER_ENABLED", c.CircuitBreakerEnabled)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TableName) == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.TableWaitTimeout <= 0 {
		return fmt.Errorf("TABLE_WAIT_TIMEOUT must be positive")
	}
	if c.EnableCache {
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when ENABLE_CACHE is set")
		}
		if c.CacheTTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be positive")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesLocalEndpoint reports whether DynamoDB is reached through a custom
// endpoint such as DynamoDB Local
func (c *Config) UsesLocalEndpoint() bool {
	return c.DynamoDBEndpoint != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("30s") or a plain number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
