// Package config provides configuration loading and structs for the devicematch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Titles    TitlesConfig    `yaml:"titles"`
	Auth      AuthConfig      `yaml:"-"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig holds paths for the category catalog files.
type CatalogConfig struct {
	CategoriesPath string `yaml:"categories_path"`
	EmbeddingsPath string `yaml:"embeddings_path"`
}

// EmbeddingConfig holds embedding provider settings. APIKey comes from the
// environment, never from the config file.
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	APIKey     string `yaml:"-"`
}

// TitlesConfig holds title store settings. URI comes from the environment; an
// empty URI means title resolution is disabled and every lookup returns absent.
type TitlesConfig struct {
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	URI        string `yaml:"-"`
}

// AuthConfig holds the API bearer token, loaded from the environment.
type AuthConfig struct {
	APIToken string
}

// Load reads and parses the config file at path, applies defaults, expands
// paths, and overlays environment variables. A missing file is not an error:
// the service can run entirely from defaults plus environment.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	ApplyDefaults(&cfg)
	ApplyEnv(&cfg)

	configDir := filepath.Dir(path)
	cfg.Catalog.CategoriesPath = expandPath(cfg.Catalog.CategoriesPath, configDir)
	cfg.Catalog.EmbeddingsPath = expandPath(cfg.Catalog.EmbeddingsPath, configDir)

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. Secrets (API token,
// embedding API key, store URI) only ever come from the environment; the
// store database and collection names may be overridden there too.
func ApplyEnv(cfg *Config) {
	cfg.Auth.APIToken = os.Getenv("API_TOKEN")
	cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Titles.URI = os.Getenv("MONGO_URI")
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		cfg.Titles.Database = v
	}
	if v := os.Getenv("MONGO_COLLECTION"); v != "" {
		cfg.Titles.Collection = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the working directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, path)
	}
	return path
}
