package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Auth struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"auth"`

	OpenRouter struct {
		BaseUrl string `yaml:"baseUrl"`
		ApiKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
	} `yaml:"openrouter"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	// Provider selects the completion backend: "openrouter" or "gemini".
	Provider string `yaml:"provider"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Personas struct {
		File string `yaml:"file"`
	} `yaml:"personas"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.OpenRouter.BaseUrl == "" {
		cfg.OpenRouter.BaseUrl = "https://openrouter.ai/api/v1"
	}
	if cfg.OpenRouter.Model == "" {
		cfg.OpenRouter.Model = "openai/gpt-4.1"
	}
	if cfg.Provider == "" {
		cfg.Provider = "openrouter"
	}
	if cfg.Personas.File == "" {
		cfg.Personas.File = "./data/personas.json"
	}

	return &cfg, nil
}
