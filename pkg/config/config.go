package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Model      ModelConfig      `mapstructure:"model"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type ModelConfig struct {
	Path        string `mapstructure:"path"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type ClassifierConfig struct {
	// Backend selects the pipeline source: "artifact" loads the
	// trained tf-idf model from disk, "openai" uses the LLM variant.
	Backend string `mapstructure:"backend"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("model.path", "models/linear_svc.json")
	v.SetDefault("model.metrics_path", "models/linear_svc_metrics.json")
	v.SetDefault("classifier.backend", "artifact")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("logging.level", "info")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Get environment variable overrides
	if modelPath := v.GetString("MODEL_PATH"); modelPath != "" {
		config.Model.Path = modelPath
	}

	if metricsPath := v.GetString("MODEL_METRICS_PATH"); metricsPath != "" {
		config.Model.MetricsPath = metricsPath
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if port := v.GetInt("PORT"); port != 0 {
		config.Server.Port = port
	}

	return &config, nil
}
