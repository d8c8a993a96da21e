package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ExportConfig contains report export configuration
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME" default:"Financial Data"`
}

// Load loads configuration from environment variables and an optional
// YAML file. Precedence per field: explicitly set environment variable,
// then file value, then envconfig default.
func Load() (*Config, error) {
	var fileCfg Config
	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		loaded, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		fileCfg = *loaded
	}

	var envCfg Config
	if err := envconfig.Process("FINMODEL", &envCfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg := merge(fileCfg, envCfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable for tests
// and deployments via FINMODEL_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv("FINMODEL_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge resolves each field between the file config and the envconfig
// result. envconfig fills defaults for unset variables, so a default in
// envCfg is indistinguishable from an explicit value; the environment is
// consulted directly to tell them apart.
func merge(fileCfg, envCfg Config) Config {
	cfg := envCfg

	cfg.Server.Port = pick(fileCfg.Server.Port, envCfg.Server.Port, "FINMODEL_SERVER_PORT")
	cfg.Server.ReadTimeout = pick(fileCfg.Server.ReadTimeout, envCfg.Server.ReadTimeout, "FINMODEL_SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = pick(fileCfg.Server.WriteTimeout, envCfg.Server.WriteTimeout, "FINMODEL_SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = pick(fileCfg.Server.IdleTimeout, envCfg.Server.IdleTimeout, "FINMODEL_SERVER_IDLE_TIMEOUT")
	cfg.Server.ShutdownTimeout = pick(fileCfg.Server.ShutdownTimeout, envCfg.Server.ShutdownTimeout, "FINMODEL_SERVER_SHUTDOWN_TIMEOUT")
	cfg.Server.RateLimitRPS = pick(fileCfg.Server.RateLimitRPS, envCfg.Server.RateLimitRPS, "FINMODEL_SERVER_RATE_LIMIT_RPS")
	cfg.Server.RateLimitBurst = pick(fileCfg.Server.RateLimitBurst, envCfg.Server.RateLimitBurst, "FINMODEL_SERVER_RATE_LIMIT_BURST")
	cfg.Logging.Level = pick(fileCfg.Logging.Level, envCfg.Logging.Level, "FINMODEL_LOGGING_LEVEL")
	cfg.Logging.Output = pick(fileCfg.Logging.Output, envCfg.Logging.Output, "FINMODEL_LOGGING_OUTPUT")
	cfg.Logging.FilePath = pick(fileCfg.Logging.FilePath, envCfg.Logging.FilePath, "FINMODEL_LOGGING_FILE_PATH")
	cfg.Export.OutputDir = pick(fileCfg.Export.OutputDir, envCfg.Export.OutputDir, "FINMODEL_EXPORT_OUTPUT_DIR")
	cfg.Export.SheetName = pick(fileCfg.Export.SheetName, envCfg.Export.SheetName, "FINMODEL_EXPORT_SHEET_NAME")

	return cfg
}

// pick returns the env value when its variable is explicitly set, else
// the file value when the file provided one, else the env value again
// (which at that point holds the envconfig default).
func pick[T comparable](fileVal, envVal T, envKey string) T {
	if _, ok := os.LookupEnv(envKey); ok {
		return envVal
	}
	var zero T
	if fileVal != zero {
		return fileVal
	}
	return envVal
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must be non-negative: %f", c.Server.RateLimitRPS)
	}
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file path required for output %q", c.Logging.Output)
	}
	return nil
}
