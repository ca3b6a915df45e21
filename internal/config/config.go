// Package config loads the site configuration from site.yaml plus the
// process environment. Environment variables win over file values so deploy
// pipelines can override without editing the file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abigaelawino/portfolio/internal/seo"
)

// ProductionAnalyticsDomain is the fallback Plausible domain applied when
// analytics is not explicitly configured but the build runs with
// APP_ENV=production.
const ProductionAnalyticsDomain = "abigaelawino.dev"

// DefaultAnalyticsHost is the hosted Plausible endpoint.
const DefaultAnalyticsHost = "https://plausible.io"

// Config is the full site configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Paths     PathsConfig     `yaml:"paths"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	History   HistoryConfig   `yaml:"history"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// PathsConfig names the source and output directories, relative to the
// working directory unless absolute.
type PathsConfig struct {
	Output  string `yaml:"output"`
	Assets  string `yaml:"assets"`
	Images  string `yaml:"images"`
	Content string `yaml:"content"`
}

// AnalyticsConfig controls the Plausible integration. An empty Domain
// disables the snippet and tightens the CSP script-src to 'self' only.
type AnalyticsConfig struct {
	Domain string `yaml:"domain,omitempty"`
	Host   string `yaml:"host,omitempty"`
}

// HistoryConfig controls the local build-history database.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no site.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv(os.LookupEnv)
	return cfg
}

// Load reads the configuration file, expands environment variables in its
// content, and applies env overrides and defaults. A missing file is not an
// error; the defaults describe the standard repository layout.
func Load(path string) (*Config, error) {
	// Best effort: .env files are a local convenience, absence is normal.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: %s not found, using defaults\n", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// applyEnv fills unset fields from the environment and hardcoded defaults.
// lookupEnv is injectable for tests. ANALYTICS_DOMAIN distinguishes unset
// from explicitly empty: empty disables analytics outright, unset defers to
// the file value or the production fallback.
func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) {
	if c.Site.Name == "" {
		c.Site.Name = "Abigael Awino"
	}
	if v, ok := lookupEnv("SITE_URL"); ok && strings.TrimSpace(v) != "" {
		c.Site.URL = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if c.Site.URL == "" {
		c.Site.URL = seo.ResolveSiteURL(func(key string) string {
			v, _ := lookupEnv(key)
			return v
		})
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "dist"
	}
	if c.Paths.Assets == "" {
		c.Paths.Assets = "assets"
	}
	if c.Paths.Images == "" {
		c.Paths.Images = "images"
	}
	if c.Paths.Content == "" {
		c.Paths.Content = "content"
	}
	if c.History.Path == "" {
		c.History.Path = ".sitegen/history.db"
	}

	if v, ok := lookupEnv("ANALYTICS_DOMAIN"); ok {
		c.Analytics.Domain = strings.TrimSpace(v)
	} else if c.Analytics.Domain == "" {
		if v, _ := lookupEnv("APP_ENV"); v == "production" {
			c.Analytics.Domain = ProductionAnalyticsDomain
		}
	}
	if v, ok := lookupEnv("ANALYTICS_HOST"); ok && strings.TrimSpace(v) != "" {
		c.Analytics.Host = strings.TrimSpace(v)
	}
	if c.Analytics.Host == "" {
		c.Analytics.Host = DefaultAnalyticsHost
	}
	c.Analytics.Host = strings.TrimRight(c.Analytics.Host, "/")
}

// AnalyticsEnabled reports whether the analytics snippet should be emitted.
func (c *Config) AnalyticsEnabled() bool { return c.Analytics.Domain != "" }
