package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	JWT     JWTConfig     `yaml:"jwt"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSec int    `yaml:"write_timeout_seconds"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	CachePrefix     string `yaml:"cache_prefix"`
	CacheTTLSec     int    `yaml:"cache_ttl_seconds"`
}

// SessionConfig holds query session settings
type SessionConfig struct {
	MaxClients int `yaml:"max_clients"`
}

// LimitsConfig bounds the work a single query may ask for
type LimitsConfig struct {
	MaxPoints      int   `yaml:"max_points"`      // points accepted by enclose and path obstacles
	MaxRadius      int   `yaml:"max_radius"`      // hexagon radius for border and solver searches
	MaxPathLength  int   `yaml:"max_path_length"` // hex distance between path endpoints
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// CacheTTL returns the solver cache expiry.
func (c RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// Addr returns host:port for the listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration and fills in defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeoutSec == 0 {
		cfg.Server.ReadTimeoutSec = 15
	}
	if cfg.Server.WriteTimeoutSec == 0 {
		cfg.Server.WriteTimeoutSec = 15
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.BlacklistPrefix == "" {
		cfg.Redis.BlacklistPrefix = "blacklist:"
	}
	if cfg.Redis.CachePrefix == "" {
		cfg.Redis.CachePrefix = "hexgeom:"
	}
	if cfg.Redis.CacheTTLSec == 0 {
		cfg.Redis.CacheTTLSec = 3600
	}
	if cfg.Session.MaxClients == 0 {
		cfg.Session.MaxClients = 100
	}
	if cfg.Limits.MaxPoints == 0 {
		cfg.Limits.MaxPoints = 256
	}
	if cfg.Limits.MaxRadius == 0 {
		cfg.Limits.MaxRadius = 200
	}
	if cfg.Limits.MaxPathLength == 0 {
		cfg.Limits.MaxPathLength = 1000
	}
	if cfg.Limits.MaxMessageSize == 0 {
		cfg.Limits.MaxMessageSize = 65536
	}
}
