// Package config loads runtime configuration for the demo harness from the
// environment (with optional .env support). Policies themselves are
// in-process values assembled from the rule library; configuration only
// selects the deployment knobs around them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/authchain/authchain/pkg/authz"
)

// Config is the complete runtime configuration.
type Config struct {
	// DefaultOnAbstain resolves the all-abstain case when a decision is
	// surfaced as a boolean. This is a security-relevant policy choice, so it
	// is always explicit configuration, never a baked-in fallback.
	DefaultOnAbstain bool

	// BannedSubjects seeds the in-memory ban set.
	BannedSubjects []string

	// AdminSubjects seeds the static admin attribute provider.
	AdminSubjects []string

	// PremiumSubjects seeds the static tier attribute provider.
	PremiumSubjects []string

	Directory  DirectoryConfig
	Prometheus PrometheusConfig

	LogLevel string `validate:"oneof=debug info warn error"`
}

// DirectoryConfig holds directory service attribute provider settings.
// When BaseURL is empty, the harness uses static providers instead.
type DirectoryConfig struct {
	BaseURL         string        `validate:"omitempty,url"`
	CacheTTL        time.Duration `validate:"min=0"`
	MaxStaleness    time.Duration `validate:"min=0"`
	ProviderTimeout time.Duration `validate:"min=0"`
}

// PrometheusConfig holds the metrics endpoint settings.
type PrometheusConfig struct {
	ListenAddr string `validate:"required,hostname_port"`
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DefaultOnAbstain: getEnvAsBool("AUTHCHAIN_DEFAULT_ON_ABSTAIN", false),
		BannedSubjects:   getEnvAsList("AUTHCHAIN_BANNED_SUBJECTS"),
		AdminSubjects:    getEnvAsList("AUTHCHAIN_ADMIN_SUBJECTS"),
		PremiumSubjects:  getEnvAsList("AUTHCHAIN_PREMIUM_SUBJECTS"),
		Directory: DirectoryConfig{
			BaseURL:         getEnv("AUTHCHAIN_DIRECTORY_URL", ""),
			CacheTTL:        getEnvAsDuration("AUTHCHAIN_DIRECTORY_CACHE_TTL", 5*time.Second),
			MaxStaleness:    getEnvAsDuration("AUTHCHAIN_DIRECTORY_MAX_STALENESS", 30*time.Second),
			ProviderTimeout: getEnvAsDuration("AUTHCHAIN_DIRECTORY_TIMEOUT", 2*time.Second),
		},
		Prometheus: PrometheusConfig{
			ListenAddr: getEnv("AUTHCHAIN_METRICS_ADDR", "127.0.0.1:9464"),
		},
		LogLevel: getEnv("AUTHCHAIN_LOG_LEVEL", "info"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", authz.ErrConfigLoad, err)
	}

	return cfg, nil
}

// SnapshotOpts derives registry snapshot options from the directory settings.
func (c *Config) SnapshotOpts() authz.SnapshotOpts {
	return authz.SnapshotOpts{
		MaxAge:             c.Directory.MaxStaleness,
		PerProviderTimeout: c.Directory.ProviderTimeout,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
