// Package config loads service settings from defaults, an optional YAML
// file and FINTRACK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FINTRACK"

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// AMQPConfig enables event publishing when URL is set.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type LedgerConfig struct {
	// Timezone decides where "today" and "this month" begin.
	Timezone string `mapstructure:"timezone"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.backend", "sqlite")
	v.SetDefault("database.path", "./data/fintrack.db")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "fintrack")
	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "fintrack")

	v.SetDefault("ledger.timezone", "UTC")
}

// Load reads configuration. A .env file in the working directory is
// loaded into the environment first if present. path may name a config
// file; when empty, config.yaml in the working directory is used if it
// exists. Environment variables override both, e.g. FINTRACK_SERVER_PORT.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}

	validModes := []string{"debug", "release", "test"}
	if !slices.Contains(validModes, c.Server.Mode) {
		errs = append(errs, fmt.Sprintf("invalid server mode '%s': must be one of %v", c.Server.Mode, validModes))
	}

	validBackends := []string{"sqlite", "memory"}
	if !slices.Contains(validBackends, c.Database.Backend) {
		errs = append(errs, fmt.Sprintf("invalid database backend '%s': must be one of %v", c.Database.Backend, validBackends))
	}
	if c.Database.Backend == "sqlite" && c.Database.Path == "" {
		errs = append(errs, "database path cannot be empty when using sqlite backend")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT secret is required (FINTRACK_JWT_SECRET)")
	}
	if c.JWT.ExpireHours <= 0 {
		errs = append(errs, fmt.Sprintf("invalid JWT expiry %d: must be positive", c.JWT.ExpireHours))
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		errs = append(errs, fmt.Sprintf("invalid bcrypt cost %d: must be between 4 and 31", c.Security.BcryptCost))
	}

	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, c.Log.Format) {
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be one of %v", c.Log.Format, validFormats))
	}

	if c.AMQP.URL != "" {
		if parsedURL, err := url.Parse(c.AMQP.URL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQP.Exchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := time.LoadLocation(c.Ledger.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid ledger timezone '%s': %v", c.Ledger.Timezone, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// TokenDuration is how long issued bearer tokens stay valid.
func (c *Config) TokenDuration() time.Duration {
	return time.Duration(c.JWT.ExpireHours) * time.Hour
}

// Location returns the ledger timezone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
