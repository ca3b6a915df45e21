package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init writes an example site.yaml at configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Name:        "Abigael Awino",
			URL:         "https://abigaelawino.dev",
			Description: "Personal portfolio and blog",
		},
		Paths: PathsConfig{
			Output:  "dist",
			Assets:  "assets",
			Images:  "images",
			Content: "content",
		},
		Analytics: AnalyticsConfig{
			Domain: "${ANALYTICS_DOMAIN}",
			Host:   DefaultAnalyticsHost,
		},
		History: HistoryConfig{
			Path: ".sitegen/history.db",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
