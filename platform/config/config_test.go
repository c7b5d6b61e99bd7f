package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LeadAPITimeout != 30*time.Second {
		t.Fatalf("LeadAPITimeout = %v, want 30s", cfg.LeadAPITimeout)
	}
	if cfg.CatalogCacheTTL != time.Minute {
		t.Fatalf("CatalogCacheTTL = %v, want 1m", cfg.CatalogCacheTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("CATALOG_CACHE_TTL", "sixty seconds")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted malformed CATALOG_CACHE_TTL")
	}
	if !strings.Contains(err.Error(), "CATALOG_CACHE_TTL") {
		t.Fatalf("error %q does not name the offending variable", err)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "smtp")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted malformed SMTP_PORT")
	}
	if !strings.Contains(err.Error(), "SMTP_PORT") {
		t.Fatalf("error %q does not name the offending variable", err)
	}
}
