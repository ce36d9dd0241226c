package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MinSummaryTokens is the smallest completion budget that fits the full bucketed summary.
const MinSummaryTokens = 1200

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Frontend FrontendConfig `envconfig:"FRONTEND"`
	Database DatabaseConfig `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Storage  StorageConfig  `envconfig:"STORAGE"`
	Clerk    ClerkConfig    `envconfig:"CLERK"`
	Hume     HumeConfig     `envconfig:"HUME"`
	OpenAI   OpenAIConfig   `envconfig:"OPENAI"`
	Summary  SummaryConfig  `envconfig:"SUMMARY"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"3000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	ShutdownTimeout int           `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	// WriteTimeout must outlast SUMMARY_DEADLINE or summaries are cut off mid-flight.
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"180s"`
}

// FrontendConfig holds the browser origins allowed by CORS
type FrontendConfig struct {
	Origin []string `envconfig:"ORIGIN" default:"http://localhost:3001"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        string `envconfig:"PORT" default:"5432"`
	User        string `envconfig:"USER" default:"postgres"`
	Password    string `envconfig:"PASSWORD" default:"postgres"`
	Name        string `envconfig:"NAME" default:"peergroup_api"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// StorageConfig holds MinIO archive configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"peergroup-archive"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
}

// ClerkConfig holds identity provider configuration
type ClerkConfig struct {
	SecretKey         string        `envconfig:"SECRET_KEY"`
	JWKSURL           string        `envconfig:"JWKS_URL" default:"https://api.clerk.com/v1/jwks"`
	AuthorizedParties []string      `envconfig:"AUTHORIZED_PARTIES"`
	Leeway            time.Duration `envconfig:"LEEWAY" default:"5s"`
	JWKSCacheTTL      time.Duration `envconfig:"JWKS_CACHE_TTL" default:"1h"`
}

// HumeConfig holds emotion-AI vendor configuration
type HumeConfig struct {
	APIKey           string        `envconfig:"API_KEY"`
	SecretKey        string        `envconfig:"SECRET_KEY"`
	TokenURL         string        `envconfig:"TOKEN_URL" default:"https://api.hume.ai/oauth2-cc/token"`
	WebhookDedupeTTL time.Duration `envconfig:"WEBHOOK_DEDUPE_TTL" default:"10m"`
}

// OpenAIConfig holds generation service configuration
type OpenAIConfig struct {
	AccessToken string        `envconfig:"ACCESS_TOKEN"`
	BaseURL     string        `envconfig:"BASE_URL"`
	Model       string        `envconfig:"MODEL" default:"gpt-4.1-mini"`
	MaxTokens   int           `envconfig:"MAX_TOKENS" default:"1200"`
	CallTimeout time.Duration `envconfig:"CALL_TIMEOUT" default:"45s"`
	MaxRetries  uint64        `envconfig:"MAX_RETRIES" default:"2"`
}

// SummaryConfig bounds the whole summarization request
type SummaryConfig struct {
	Deadline time.Duration `envconfig:"DEADLINE" default:"150s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv reads the process environment without touching .env or validating
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.AccessToken == "" {
		return fmt.Errorf("OPENAI_ACCESS_TOKEN is required")
	}
	if c.OpenAI.MaxTokens < MinSummaryTokens {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be at least %d, got %d", MinSummaryTokens, c.OpenAI.MaxTokens)
	}
	if c.Hume.SecretKey == "" {
		return fmt.Errorf("HUME_SECRET_KEY is required")
	}
	if c.Clerk.JWKSURL == "" {
		return fmt.Errorf("CLERK_JWKS_URL is required")
	}
	if c.OpenAI.CallTimeout <= 0 || c.Summary.Deadline <= 0 {
		return fmt.Errorf("OPENAI_CALL_TIMEOUT and SUMMARY_DEADLINE must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
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
