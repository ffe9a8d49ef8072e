package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the lookup directories
const (
	EnvPublicPath = "PUBLIC_PATH"
	EnvDataPath   = "DATA_PATH"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig `yaml:"server"`
	Paths   PathsConfig  `yaml:"paths"`
	Static  StaticConfig `yaml:"static"`
	Client  ClientConfig `yaml:"client"`
	Retry   RetryConfig  `yaml:"retry"`
	Logging LogConfig    `yaml:"logging"`
}

// ServerConfig contains settings for the listener and connection handling
type ServerConfig struct {
	Address        string `yaml:"address"`
	ReadTimeout    int    `yaml:"read_timeout"`     // in seconds
	WriteTimeout   int    `yaml:"write_timeout"`    // in seconds
	MaxRequestSize int    `yaml:"max_request_size"` // in bytes
	MaxConnections int    `yaml:"max_connections"`
}

// PathsConfig contains the base directories of the file and data lookups
type PathsConfig struct {
	Public string `yaml:"public"`
	Data   string `yaml:"data"`
}

// StaticConfig contains content type settings for static files
type StaticConfig struct {
	DefaultType string            `yaml:"default_type"`
	MimeTypes   map[string]string `yaml:"mime_types"` // file suffix -> content type
}

// ClientConfig contains settings for the fetch command
type ClientConfig struct {
	Timeout int `yaml:"timeout"` // in seconds
}

// RetryConfig contains settings for retry behavior
type RetryConfig struct {
	Enabled         bool     `yaml:"enabled"`
	MaxRetries      int      `yaml:"max_retries"`
	InitialDelay    int      `yaml:"initial_delay"` // in milliseconds
	MaxDelay        int      `yaml:"max_delay"`     // in milliseconds
	BackoffFactor   float64  `yaml:"backoff_factor"`
	JitterFactor    float64  `yaml:"jitter_factor"`
	RetryableErrors []string `yaml:"retryable_errors"`
}

// LogConfig contains settings for logging
type LogConfig struct {
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // maximum size in megabytes
	MaxBackups  int    `yaml:"max_backups"` // maximum number of old log files to retain
	MaxAge      int    `yaml:"max_age"`     // maximum number of days to retain old log files
	Compress    bool   `yaml:"compress"`
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        "127.0.0.1:2222",
			ReadTimeout:    30,
			WriteTimeout:   30,
			MaxRequestSize: 64 * 1024,
			MaxConnections: 16,
		},
		Paths: PathsConfig{
			Public: "public",
			Data:   "data",
		},
		Static: StaticConfig{
			DefaultType: "text/html",
			MimeTypes: map[string]string{
				".css": "text/css",
				".js":  "application/javascript",
			},
		},
		Client: ClientConfig{
			Timeout: 10,
		},
		Retry: RetryConfig{
			Enabled:       true,
			MaxRetries:    3,
			InitialDelay:  200,
			MaxDelay:      2000,
			BackoffFactor: 2.0,
			JitterFactor:  0.1,
			RetryableErrors: []string{
				"connection refused",
				"connection reset",
				"timeout",
			},
		},
		Logging: LogConfig{
			LogToFile:   false,
			LogFilePath: "tinyhttp.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Default returns a configuration with default values and environment overrides applied
func Default() *Config {
	cfg := LoadDefault()
	cfg.applyEnv()
	return cfg
}

// Load reads configuration from a file and merges it with default values
func Load(configPath string) (*Config, error) {
	cfg := LoadDefault()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.merge(&fileCfg)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault attempts to load configuration from a file
// If the file doesn't exist or can't be parsed, it returns default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = Default()
	}
	return cfg
}

// Validate checks that the settings can be used to run the server
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.MaxRequestSize <= 0 {
		return fmt.Errorf("server.max_request_size must be positive, got %d", c.Server.MaxRequestSize)
	}
	if c.Server.MaxConnections <= 0 {
		return fmt.Errorf("server.max_connections must be positive, got %d", c.Server.MaxConnections)
	}
	if c.Paths.Public == "" || c.Paths.Data == "" {
		return fmt.Errorf("paths.public and paths.data must not be empty")
	}
	return nil
}

func (c *Config) merge(fileCfg *Config) {
	// Server
	if fileCfg.Server.Address != "" {
		c.Server.Address = fileCfg.Server.Address
	}
	if fileCfg.Server.ReadTimeout > 0 {
		c.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout > 0 {
		c.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Server.MaxRequestSize > 0 {
		c.Server.MaxRequestSize = fileCfg.Server.MaxRequestSize
	}
	if fileCfg.Server.MaxConnections > 0 {
		c.Server.MaxConnections = fileCfg.Server.MaxConnections
	}

	// Paths
	if fileCfg.Paths.Public != "" {
		c.Paths.Public = fileCfg.Paths.Public
	}
	if fileCfg.Paths.Data != "" {
		c.Paths.Data = fileCfg.Paths.Data
	}

	// Static content types; file entries overwrite the defaults one by one
	if fileCfg.Static.DefaultType != "" {
		c.Static.DefaultType = fileCfg.Static.DefaultType
	}
	for suffix, contentType := range fileCfg.Static.MimeTypes {
		c.Static.MimeTypes[suffix] = contentType
	}

	// Client
	if fileCfg.Client.Timeout > 0 {
		c.Client.Timeout = fileCfg.Client.Timeout
	}

	// Retry
	if fileCfg.Retry.Enabled {
		c.Retry.Enabled = fileCfg.Retry.Enabled
	}
	if fileCfg.Retry.MaxRetries > 0 {
		c.Retry.MaxRetries = fileCfg.Retry.MaxRetries
	}
	if fileCfg.Retry.InitialDelay > 0 {
		c.Retry.InitialDelay = fileCfg.Retry.InitialDelay
	}
	if fileCfg.Retry.MaxDelay > 0 {
		c.Retry.MaxDelay = fileCfg.Retry.MaxDelay
	}
	if fileCfg.Retry.BackoffFactor > 0 {
		c.Retry.BackoffFactor = fileCfg.Retry.BackoffFactor
	}
	if fileCfg.Retry.JitterFactor > 0 {
		c.Retry.JitterFactor = fileCfg.Retry.JitterFactor
	}
	if len(fileCfg.Retry.RetryableErrors) > 0 {
		c.Retry.RetryableErrors = fileCfg.Retry.RetryableErrors
	}

	// Logging
	if fileCfg.Logging.LogToFile {
		c.Logging.LogToFile = fileCfg.Logging.LogToFile
	}
	if fileCfg.Logging.LogFilePath != "" {
		c.Logging.LogFilePath = fileCfg.Logging.LogFilePath
	}
	if fileCfg.Logging.MaxSize > 0 {
		c.Logging.MaxSize = fileCfg.Logging.MaxSize
	}
	if fileCfg.Logging.MaxBackups > 0 {
		c.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	if fileCfg.Logging.MaxAge > 0 {
		c.Logging.MaxAge = fileCfg.Logging.MaxAge
	}
	if fileCfg.Logging.Compress {
		c.Logging.Compress = fileCfg.Logging.Compress
	}
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvPublicPath); dir != "" {
		c.Paths.Public = dir
	}
	if dir := os.Getenv(EnvDataPath); dir != "" {
		c.Paths.Data = dir
	}
}
