package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{DataDir: "data"},
		Auth: AuthConfig{
			JWTSecret:        "change-me",
			TokenExpireHours: 24,
			Users: map[string]string{
				"admin": "8c6976e5b5410415bde908bd4dee15dfb167a9c873fc4bb8a81f6f2ab448a918",
			},
		},
		Parser:  ParserConfig{Concurrency: 4},
		Company: CompanyConfig{Name: "Alpha Locks and Safe", DefaultCommissionRate: 0.5},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "data", cfg.Storage.DataDir)
				assert.Equal(t, 24, cfg.Auth.TokenExpireHours)
				assert.Contains(t, cfg.Auth.Users, "admin")
				assert.Equal(t, "reports-api-service", cfg.App.Name)
				assert.Equal(t, "Alpha Locks and Safe", cfg.Company.Name)
				assert.InDelta(t, 0.5, cfg.Company.DefaultCommissionRate, 1e-9)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty data dir",
			mutate:    func(c *Config) { c.Storage.DataDir = "" },
			wantErr:   true,
			errString: "data_dir is required",
		},
		{
			name: "absolute jobs file without data dir is fine",
			mutate: func(c *Config) {
				c.Storage.DataDir = ""
				c.Storage.JobsFile = string(filepath.Separator) + filepath.Join("var", "jobs.json")
			},
			wantErr: false,
		},
		{
			name:      "empty jwt secret",
			mutate:    func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr:   true,
			errString: "jwt_secret is required",
		},
		{
			name:      "zero token expiry",
			mutate:    func(c *Config) { c.Auth.TokenExpireHours = 0 },
			wantErr:   true,
			errString: "token_expire_hours",
		},
		{
			name:      "empty user table",
			mutate:    func(c *Config) { c.Auth.Users = nil },
			wantErr:   true,
			errString: "users table is empty",
		},
		{
			name:      "negative parser concurrency",
			mutate:    func(c *Config) { c.Parser.Concurrency = -1 },
			wantErr:   true,
			errString: "parser concurrency",
		},
		{
			name:      "commission rate above 1",
			mutate:    func(c *Config) { c.Company.DefaultCommissionRate = 45 },
			wantErr:   true,
			errString: "default_commission_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.NoError(t, err)
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing auth", func(t *testing.T) {
		cfg, err := Load("testdata/missing_auth.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret is required")
	})
}

func TestStorageConfig_Paths(t *testing.T) {
	t.Run("relative files resolve against data dir", func(t *testing.T) {
		s := StorageConfig{DataDir: "data", JobsFile: "jobs.json", TechniciansFile: "technicians.json"}
		assert.Equal(t, filepath.Join("data", "jobs.json"), s.JobsPath())
		assert.Equal(t, filepath.Join("data", "technicians.json"), s.TechniciansPath())
	})

	t.Run("empty file names use defaults", func(t *testing.T) {
		s := StorageConfig{DataDir: "data"}
		assert.Equal(t, filepath.Join("data", "jobs.json"), s.JobsPath())
		assert.Equal(t, filepath.Join("data", "technicians.json"), s.TechniciansPath())
	})

	t.Run("absolute file names win over data dir", func(t *testing.T) {
		abs := string(filepath.Separator) + filepath.Join("var", "lib", "jobs.json")
		s := StorageConfig{DataDir: "data", JobsFile: abs}
		assert.Equal(t, abs, s.JobsPath())
	})
}

func TestPortConstants(t *testing.T) {
	t.Run("port constants are correct", func(t *testing.T) {
		assert.Equal(t, 1, MinPort)
		assert.Equal(t, 65535, MaxPort)
	})

	t.Run("valid port range", func(t *testing.T) {
		validPorts := []int{1, 80, 443, 8080, 65535}
		for _, port := range validPorts {
			assert.GreaterOrEqual(t, port, MinPort)
			assert.LessOrEqual(t, port, MaxPort)
		}
	})

	t.Run("invalid port range", func(t *testing.T) {
		invalidPorts := []int{0, -1, 65536, 70000}
		for _, port := range invalidPorts {
			valid := port >= MinPort && port <= MaxPort
			assert.False(t, valid, "port %d should be invalid", port)
		}
	})
}
