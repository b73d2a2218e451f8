package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// StreakResetPolicy controls what happens to the daily streak when a
// calendar day is skipped between claims.
type StreakResetPolicy string

const (
	// StreakResetNone keeps the streak growing across missed days. This is
	// the historical behavior and the default.
	StreakResetNone StreakResetPolicy = "none"
	// StreakResetMissedDay resets the streak to 1 when the previous claim
	// was not the immediately preceding calendar day.
	StreakResetMissedDay StreakResetPolicy = "missed-day"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for authentication

	StartingBalance int               // whole dollars granted to a fresh player
	ShopSlots       int               // entries per daily shop rotation
	StreakReset     StreakResetPolicy // daily streak reset policy
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "casesim"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", ""), // empty selects the in-memory store
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "casesim"),
		APIKey:      getEnv("API_KEY", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.StartingBalance, err = getEnvInt("STARTING_BALANCE", 100)
	if err != nil {
		return nil, err
	}
	if cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("STARTING_BALANCE must not be negative, got %d", cfg.StartingBalance)
	}

	cfg.ShopSlots, err = getEnvInt("SHOP_SLOTS", 8)
	if err != nil {
		return nil, err
	}
	if cfg.ShopSlots <= 0 {
		return nil, fmt.Errorf("SHOP_SLOTS must be positive, got %d", cfg.ShopSlots)
	}

	switch policy := StreakResetPolicy(getEnv("STREAK_RESET", string(StreakResetNone))); policy {
	case StreakResetNone, StreakResetMissedDay:
		cfg.StreakReset = policy
	default:
		return nil, fmt.Errorf("invalid STREAK_RESET value: %q", policy)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
