package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Parser  ParserConfig  `yaml:"parser"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
	Company CompanyConfig `yaml:"company"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig holds the flat-file data store locations. Relative file
// names are resolved against DataDir.
type StorageConfig struct {
	DataDir         string `yaml:"data_dir"`
	JobsFile        string `yaml:"jobs_file"`
	TechniciansFile string `yaml:"technicians_file"`
}

// JobsPath returns the resolved jobs document path.
func (s StorageConfig) JobsPath() string {
	return s.resolve(s.JobsFile, "jobs.json")
}

// TechniciansPath returns the resolved technicians document path.
func (s StorageConfig) TechniciansPath() string {
	return s.resolve(s.TechniciansFile, "technicians.json")
}

func (s StorageConfig) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

// AuthConfig holds JWT settings and the user table. Users maps a login name
// to the hex SHA-256 digest of its password.
type AuthConfig struct {
	JWTSecret        string            `yaml:"jwt_secret"`
	TokenExpireHours int               `yaml:"token_expire_hours"`
	Users            map[string]string `yaml:"users"`
}

// ParserConfig holds message parsing settings
type ParserConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// CompanyConfig holds report branding and commission defaults.
// DefaultCommissionRate is a 0-1 fraction.
type CompanyConfig struct {
	Name                  string  `yaml:"name"`
	DefaultCommissionRate float64 `yaml:"default_commission_rate"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Storage.DataDir == "" && !filepath.IsAbs(c.Storage.JobsFile) {
		return fmt.Errorf("storage data_dir is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}

	if c.Auth.TokenExpireHours <= 0 {
		return fmt.Errorf("auth token_expire_hours must be greater than 0")
	}

	if len(c.Auth.Users) == 0 {
		return fmt.Errorf("auth users table is empty")
	}

	if c.Parser.Concurrency < 0 {
		return fmt.Errorf("parser concurrency must not be negative")
	}

	if c.Company.DefaultCommissionRate < 0 || c.Company.DefaultCommissionRate > 1 {
		return fmt.Errorf("company default_commission_rate must be between 0 and 1")
	}

	return nil
}
