package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Security     SecurityConfig     `mapstructure:"security"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SecurityConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`
	JWTExpiration      time.Duration `mapstructure:"jwt_expiration"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst"`
	EnableAuth         bool          `mapstructure:"enable_auth"`
	EnableRateLimit    bool          `mapstructure:"enable_rate_limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConnectivityConfig bounds the probes run against external systems
type ConnectivityConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type CatalogConfig struct {
	CacheSize   int  `mapstructure:"cache_size"`
	SeedOnStart bool `mapstructure:"seed_on_start"`
}

// Load reads configuration from a .env file, config.yaml and the
// environment, in increasing order of precedence. configFile overrides the
// search path when set.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	// server.port is overridden by SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Connectivity.Timeout <= 0 {
		return fmt.Errorf("connectivity.timeout must be positive, got %s", c.Connectivity.Timeout)
	}
	if c.Catalog.CacheSize <= 0 {
		return fmt.Errorf("catalog.cache_size must be positive, got %d", c.Catalog.CacheSize)
	}
	if c.Security.EnableAuth && c.Security.JWTSecret == "" {
		return errors.New("security.jwt_secret is required when auth is enabled")
	}
	return nil
}

// Addr returns the listen address of the HTTP server
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.database", "dataflow")
	v.SetDefault("database.username", "dataflow")
	v.SetDefault("database.password", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	// Security defaults
	v.SetDefault("security.jwt_secret", "")
	v.SetDefault("security.jwt_expiration", "24h")
	v.SetDefault("security.rate_limit_per_minute", 60)
	v.SetDefault("security.rate_limit_burst", 10)
	v.SetDefault("security.enable_auth", false)
	v.SetDefault("security.enable_rate_limit", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Connectivity test defaults
	v.SetDefault("connectivity.timeout", "30s")
	v.SetDefault("connectivity.dial_timeout", "10s")

	// Catalog defaults
	v.SetDefault("catalog.cache_size", 128)
	v.SetDefault("catalog.seed_on_start", true)
}
