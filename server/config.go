package server

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vtex/go-resconfig/redis"
	"github.com/vtex/go-resconfig/resindex"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the resolver service.
type Config struct {
	Listen      string `yaml:"listen"`
	ServiceName string `yaml:"service_name"`
	Version     string `yaml:"version"`
	LogLevel    string `yaml:"log_level"`

	Cache CacheConfig  `yaml:"cache"`
	Redis redis.Config `yaml:"redis"`
	Index IndexConfig  `yaml:"index"`
}

type CacheConfig struct {
	// TTL of cached resolutions and parsed folder configurations.
	TTL time.Duration `yaml:"ttl"`
	// LocalTTL caps how long an instance keeps a value taken from Redis.
	LocalTTL time.Duration `yaml:"local_ttl"`
}

type IndexConfig struct {
	// Dirs are "res" directories scanned at startup and on refresh.
	Dirs []string `yaml:"dirs"`
	// Remotes are URLs of resource listings or zip archives.
	Remotes []string `yaml:"remotes"`
	// Ignore holds glob patterns of "<folder>/<file>" paths left out of the
	// index, e.g. "**/.DS_Store".
	Ignore []string `yaml:"ignore"`
	// Watch rescans Dirs when their content changes.
	Watch          bool          `yaml:"watch"`
	RefreshBackoff time.Duration `yaml:"refresh_backoff"`
	ScanTimeout    time.Duration `yaml:"scan_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:      ":8080",
		ServiceName: "resconfig",
		Version:     "dev",
		LogLevel:    "info",
		Cache: CacheConfig{
			TTL:      time.Hour,
			LocalTTL: 5 * time.Minute,
		},
		Index: IndexConfig{
			RefreshBackoff: 30 * time.Second,
			ScanTimeout:    time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen is required")
	}
	if c.ServiceName == "" {
		return errors.New("service_name is required")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level %q is invalid", c.LogLevel)
	}
	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.Cache.LocalTTL < 0 {
		return errors.New("cache.local_ttl must not be negative")
	}
	if c.Index.RefreshBackoff < 0 || c.Index.ScanTimeout < 0 {
		return errors.New("index durations must not be negative")
	}
	if err := resindex.ValidateIgnore(c.Index.Ignore); err != nil {
		return errors.Wrap(err, "index.ignore is invalid")
	}
	return nil
}

// RedisEnabled reports whether resolutions are shared through Redis.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Endpoint != ""
}

// LoadFromFile reads a YAML file over the defaults and validates the result.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config file")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid config file %s", path)
	}
	return config, nil
}
