package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the server. Values come from an
// optional YAML file, overridden by environment variables.
type Config struct {
	Addr        string `yaml:"addr"`
	ServiceName string `yaml:"service_name"`
	Env         string `yaml:"env"`
	LogFile     string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		ServiceName: "warehouse",
		Env:         "dev",
	}
}

// Load reads the config file at path when it exists, then applies env
// overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// file is optional
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WAREHOUSE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
