package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"akashic/database"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	ListenAddr string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Ledger configuration
	WelcomeBonus int64 // Mana granted once at registration

	// Session configuration
	SessionTTL        time.Duration
	SessionCookieName string

	// Oracle configuration
	OracleEndpoint     string // Completion endpoint of the LLM provider
	OracleAPIKey       string
	OracleModel        string
	OracleQuestionCost int64 // Mana spent per question

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables publishing

	// OpenTelemetry configuration
	OTelEnabled      bool
	OTelServiceName  string
	OTelExporterType string // "otlp" or "console"
	OTelEndpoint     string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		ListenAddr: getEnvWithDefault("LISTEN_ADDR", ":8080"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		WelcomeBonus: 50,

		SessionTTL:        7 * 24 * time.Hour,
		SessionCookieName: getEnvWithDefault("SESSION_COOKIE_NAME", "archive_session"),

		OracleEndpoint:     getEnvWithDefault("ORACLE_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		OracleAPIKey:       os.Getenv("ORACLE_API_KEY"),
		OracleModel:        getEnvWithDefault("ORACLE_MODEL", "gpt-4o-mini"),
		OracleQuestionCost: 5,

		NATSServers: os.Getenv("NATS_SERVERS"),

		OTelEnabled:      os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:  getEnvWithDefault("OTEL_SERVICE_NAME", "akashic-archive"),
		OTelExporterType: getEnvWithDefault("OTEL_EXPORTER_TYPE", "otlp"),
		OTelEndpoint:     getEnvWithDefault("OTEL_ENDPOINT", "localhost:4317"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if bonus := os.Getenv("WELCOME_BONUS"); bonus != "" {
		if parsed, err := strconv.ParseInt(bonus, 10, 64); err == nil {
			config.WelcomeBonus = parsed
		}
	}
	if cost := os.Getenv("ORACLE_QUESTION_COST"); cost != "" {
		if parsed, err := strconv.ParseInt(cost, 10, 64); err == nil {
			config.OracleQuestionCost = parsed
		}
	}
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			config.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
		if config.WelcomeBonus < 0 {
			return nil, fmt.Errorf("WELCOME_BONUS cannot be negative")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		ListenAddr:         ":0",
		WelcomeBonus:       50,
		SessionTTL:         time.Hour,
		SessionCookieName:  "archive_session",
		OracleQuestionCost: 5,
		OracleModel:        "test-model",
	}
}
