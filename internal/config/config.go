package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"terra-farm/internal/cache"
)

// Config is the top level service configuration
type Config struct {
	Server ServerConfig      `mapstructure:"server"`
	Cache  cache.CacheConfig `mapstructure:"cache"`
	Logger LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggerConfig configures the logger
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// LoadConfig loads configuration from config files and environment variables
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/terra-farm")

	// Environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("TF") // Terra Farm

	viper.BindEnv("cache.backend", "TF_CACHE_BACKEND")
	viper.BindEnv("cache.default_ttl", "TF_CACHE_DEFAULT_TTL")
	viper.BindEnv("cache.max_entries", "TF_CACHE_MAX_ENTRIES")
	viper.BindEnv("cache.addresses", "TF_CACHE_ADDRESSES")
	viper.BindEnv("cache.password", "TF_CACHE_PASSWORD")
	viper.BindEnv("cache.database", "TF_CACHE_DATABASE")
	viper.BindEnv("cache.max_retries", "TF_CACHE_MAX_RETRIES")
	viper.BindEnv("cache.pool_size", "TF_CACHE_POOL_SIZE")
	viper.BindEnv("cache.min_idle_conns", "TF_CACHE_MIN_IDLE_CONNS")
	viper.BindEnv("cache.dial_timeout", "TF_CACHE_DIAL_TIMEOUT")
	viper.BindEnv("cache.read_timeout", "TF_CACHE_READ_TIMEOUT")
	viper.BindEnv("cache.write_timeout", "TF_CACHE_WRITE_TIMEOUT")
	viper.BindEnv("cache.pool_timeout", "TF_CACHE_POOL_TIMEOUT")

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file is optional, defaults apply
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// The ADDRESSES env var arrives as a comma separated string
	if addressesStr := viper.GetString("cache.addresses"); addressesStr != "" {
		addresses := strings.Split(addressesStr, ",")
		for i, addr := range addresses {
			addresses[i] = strings.TrimSpace(addr)
		}
		config.Cache.Addresses = addresses
	}

	return &config, nil
}

// setDefaults establishes the default values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Cache defaults - memory backend, redis settings for shared deployments
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.default_ttl", "30m")
	viper.SetDefault("cache.max_entries", 10000)
	viper.SetDefault("cache.addresses", []string{"localhost:6379"})
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.database", 0)
	viper.SetDefault("cache.max_retries", 3)
	viper.SetDefault("cache.pool_size", 10)
	viper.SetDefault("cache.min_idle_conns", 5)
	viper.SetDefault("cache.dial_timeout", "5s")
	viper.SetDefault("cache.read_timeout", "3s")
	viper.SetDefault("cache.write_timeout", "3s")
	viper.SetDefault("cache.pool_timeout", "4s")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output_path", "stdout")
}

// GetAddress returns the full server address
func (sc *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", sc.Host, sc.Port)
}
