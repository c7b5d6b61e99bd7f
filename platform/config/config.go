// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// LeadAPIConfig provides settings for the remote lead API client.
type LeadAPIConfig interface {
	GetLeadAPIURL() string
	GetLeadAPITimeout() time.Duration
}

// CacheConfig provides freshness windows for catalog data.
type CacheConfig interface {
	GetCatalogCacheTTL() time.Duration
	GetCompanyCacheTTL() time.Duration
}

// StoreConfig provides settings for the durable local store.
type StoreConfig interface {
	GetStorePath() string
}

// EmailConfig provides settings for SMTP notification delivery.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminEmail() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	LeadAPIURL       string
	LeadAPITimeout   time.Duration
	CatalogCacheTTL  time.Duration
	CompanyCacheTTL  time.Duration
	StorePath        string
	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	AdminEmail       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// LeadAPIConfig implementation
func (c *Config) GetLeadAPIURL() string            { return c.LeadAPIURL }
func (c *Config) GetLeadAPITimeout() time.Duration { return c.LeadAPITimeout }

// CacheConfig implementation
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }
func (c *Config) GetCompanyCacheTTL() time.Duration { return c.CompanyCacheTTL }

// StoreConfig implementation
func (c *Config) GetStorePath() string { return c.StorePath }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetAdminEmail() string       { return c.AdminEmail }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	leadAPITimeout, err := durationEnv("LEAD_API_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	catalogTTL, err := durationEnv("CATALOG_CACHE_TTL", "1m")
	if err != nil {
		return nil, err
	}
	companyTTL, err := durationEnv("COMPANY_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	smtpPort, err := intEnv("SMTP_PORT", "587")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		LeadAPIURL:       getEnv("LEAD_API_URL", "https://lunaxcode-fastapi.vercel.app"),
		LeadAPITimeout:   leadAPITimeout,
		CatalogCacheTTL:  catalogTTL,
		CompanyCacheTTL:  companyTTL,
		StorePath:        getEnv("STORE_PATH", "lunaxcode.db"),
		EmailEnabled:     emailEnabled && smtpHost != "",
		SMTPHost:         smtpHost,
		SMTPPort:         smtpPort,
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Lunaxcode"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminEmail:       getEnv("ADMIN_EMAIL", "lunaxcode2030@gmail.com"),
	}

	if cfg.LeadAPIURL == "" {
		return nil, fmt.Errorf("LEAD_API_URL is required")
	}
	if cfg.LeadAPITimeout <= 0 {
		return nil, fmt.Errorf("LEAD_API_TIMEOUT must be a positive duration")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func durationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func intEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
