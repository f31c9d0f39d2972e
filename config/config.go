package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`
}

const defaultPort = 8080

// LoadConfig reads the configuration file and applies environment overrides.
// The file is optional; GEMINI_API_KEY always wins over the yaml value so the
// key can be supplied by the environment alone.
func LoadConfig(path string) (*Config, error) {
	// Load .env if present, for local development. Not required in
	// production where the environment is set by the platform.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.ApiKey = key
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}

	return &cfg, nil
}
