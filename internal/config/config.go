// Package config loads infragraphctl's runtime settings: document
// store connection details, default log level, and the HTTP bind
// address for the serve subcommand.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string         `yaml:"log_level"`
	API      APIConfig      `yaml:"api"`
	Docstore DocstoreConfig `yaml:"docstore"`
	Neo4j    Neo4jConfig    `yaml:"neo4j"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

// DocstoreConfig describes the Postgres-backed opaque document store.
// When Enabled is false, infragraphctl operates purely in-memory and
// never dials a database.
type DocstoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

func (d *DocstoreConfig) Validate() error {
	if !d.Enabled {
		return nil
	}
	if d.DSN == "" {
		return fmt.Errorf("docstore.dsn is required when docstore.enabled is true")
	}
	return nil
}

// Neo4jConfig describes the connection used by the export-neo4j
// subcommand. When Enabled is false, infragraphctl never dials Neo4j.
type Neo4jConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

func (n *Neo4jConfig) Validate() error {
	if !n.Enabled {
		return nil
	}
	if n.URI == "" {
		return fmt.Errorf("neo4j.uri is required when neo4j.enabled is true")
	}
	return nil
}

// LoadConfig reads and parses a YAML config file. An empty path falls
// back to GetDefaultConfigPath.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetDefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Docstore.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := config.Neo4j.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Default returns the built-in settings used when no config file is
// present: in-memory only, info logging, port 8080 on all interfaces.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		API:      APIConfig{Addr: ":8080"},
	}
}

func GetDefaultConfigPath() string {
	if path := os.Getenv("INFRAGRAPH_CONFIG_PATH"); path != "" {
		return path
	}

	wd, _ := os.Getwd()
	return filepath.Join(wd, "config", "infragraph.yaml")
}
