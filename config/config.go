package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the scraper configuration
type Config struct {
	Source struct {
		URL           string `yaml:"url"`
		TableSelector string `yaml:"table_selector"`
		HeaderRows    int    `yaml:"header_rows"`
	} `yaml:"source"`
	Output struct {
		Directory  string `yaml:"directory"`
		Filename   string `yaml:"filename"`
		AppendDate bool   `yaml:"append_date"`
	} `yaml:"output"`
	Filters struct {
		States            []string `yaml:"states"`
		MinCityPopulation int      `yaml:"min_city_population"`
	} `yaml:"filters"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Source.URL == "" {
		cfg.Source.URL = "https://en.wikipedia.org/wiki/List_of_capitals_in_the_United_States"
	}
	if cfg.Source.TableSelector == "" {
		cfg.Source.TableSelector = "table.wikitable"
	}
	if cfg.Source.HeaderRows <= 0 {
		cfg.Source.HeaderRows = 2
	}
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = "us_capitals.csv"
	}
}
