package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 3000
	defaultEnv        = "development"
	defaultDataset    = "production"
	defaultAPIVersion = "2023-01-01"
	defaultRevalidate = 60
	defaultSiteTitle  = "Blog"
)

var apiVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SanityConfig selects the content store instance and partition.
type SanityConfig struct {
	ProjectID  string `yaml:"project_id"`
	Dataset    string `yaml:"dataset"`
	APIVersion string `yaml:"api_version"`
	UseCDN     *bool  `yaml:"use_cdn"`
	Token      string `yaml:"token"`
}

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment variables taking precedence over the file.
type AppConfig struct {
	Port              int          `yaml:"port"`
	Env               string       `yaml:"env"` // "development" | "production"
	BaseURL           string       `yaml:"base_url"`
	SiteTitle         string       `yaml:"site_title"`
	RedisURL          string       `yaml:"redis_url"`
	RevalidateSeconds int          `yaml:"revalidate_seconds"`
	AllowedOrigins    []string     `yaml:"allowed_origins"`
	Sanity            SanityConfig `yaml:"sanity"`
}

// Load reads the YAML file at path (which may be absent), applies environment
// overrides, fills defaults and validates the result.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration is fine.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		c.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("SITE_BASE_URL")); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SANITY_PROJECT_ID")); v != "" {
		c.Sanity.ProjectID = v
	}
	if v := strings.TrimSpace(os.Getenv("SANITY_DATASET")); v != "" {
		c.Sanity.Dataset = v
	}
	if v := strings.TrimSpace(os.Getenv("SANITY_API_VERSION")); v != "" {
		c.Sanity.APIVersion = v
	}
	if v := strings.TrimSpace(os.Getenv("SANITY_USE_CDN")); v != "" {
		if useCDN, err := strconv.ParseBool(v); err == nil {
			c.Sanity.UseCDN = &useCDN
		}
	}
	if v := strings.TrimSpace(os.Getenv("SANITY_API_TOKEN")); v != "" {
		c.Sanity.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("REVALIDATE_SECONDS")); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.RevalidateSeconds = seconds
		}
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.SiteTitle == "" {
		c.SiteTitle = defaultSiteTitle
	}
	if c.Sanity.Dataset == "" {
		c.Sanity.Dataset = defaultDataset
	}
	if c.Sanity.APIVersion == "" {
		c.Sanity.APIVersion = defaultAPIVersion
	}
	if c.Sanity.UseCDN == nil {
		useCDN := true
		c.Sanity.UseCDN = &useCDN
	}
	if c.RevalidateSeconds <= 0 {
		c.RevalidateSeconds = defaultRevalidate
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("http://localhost:%d", c.Port)
	}
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.Sanity.ProjectID) == "" {
		return errors.New("config: sanity project id is required (sanity.project_id or SANITY_PROJECT_ID)")
	}
	if !apiVersionPattern.MatchString(c.Sanity.APIVersion) {
		return fmt.Errorf("config: sanity api version %q must be YYYY-MM-DD", c.Sanity.APIVersion)
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// Revalidate returns the page regeneration window.
func (c *AppConfig) Revalidate() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}

// UseCDN reports whether reads should go through the cached API host.
func (c *AppConfig) UseCDN() bool {
	return c.Sanity.UseCDN == nil || *c.Sanity.UseCDN
}
