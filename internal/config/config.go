package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	Scan        ScanConfig
	API         APIConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a scan-history database was configured at all.
// The service runs fine without one; history endpoints are just disabled.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// ScanConfig tunes the collector and planner loops.
type ScanConfig struct {
	PageSize int
	// PagesPerSecond throttles page fetches and per-parent mutation calls as a
	// courtesy to Shopify's rate limiter. Zero disables throttling.
	PagesPerSecond float64
	// ReassignPrefix is prepended to the variant's numeric ID when reassigning
	// a key field (e.g. "SKU-" -> "SKU-43122345").
	ReassignPrefix string
}

type APIConfig struct {
	// AdminKeyHash is a bcrypt hash of the admin API key. Empty disables auth
	// (development only).
	AdminKeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SCAN_PAGE_SIZE", "50")
	viper.SetDefault("SCAN_PAGES_PER_SECOND", "2")
	viper.SetDefault("REASSIGN_SKU_PREFIX", "SKU-")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "skuaudit"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2025-07"),
		},
		Scan: ScanConfig{
			PageSize:       viper.GetInt("SCAN_PAGE_SIZE"),
			PagesPerSecond: viper.GetFloat64("SCAN_PAGES_PER_SECOND"),
			ReassignPrefix: getEnvOrViper("REASSIGN_SKU_PREFIX", "SKU-"),
		},
		API: APIConfig{
			AdminKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Scan.PageSize < 1 || cfg.Scan.PageSize > 250 {
		cfg.Scan.PageSize = 50
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
