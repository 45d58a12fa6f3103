package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Packages  PackagesConfig  `mapstructure:"packages"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr" envconfig:"REDIS_ADDR"`
	Password string        `mapstructure:"password" envconfig:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint" envconfig:"STORAGE_ENDPOINT"`
	AccessKey string `mapstructure:"access_key" envconfig:"STORAGE_ACCESS_KEY"`
	SecretKey string `mapstructure:"secret_key" envconfig:"STORAGE_SECRET_KEY"`
	Bucket    string `mapstructure:"bucket" envconfig:"STORAGE_BUCKET"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from"`
}

// PackagesConfig bounds the package update transaction.
type PackagesConfig struct {
	MaxFeatures        int           `mapstructure:"max_features"`
	MaxRequirements    int           `mapstructure:"max_requirements"`
	ReconcileBatchSize int           `mapstructure:"reconcile_batch_size"`
	TxTimeout          time.Duration `mapstructure:"tx_timeout"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig reads config.yml and applies environment overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("redis.cache_ttl", 5*time.Minute)
	viper.SetDefault("packages.max_features", 100)
	viper.SetDefault("packages.max_requirements", 50)
	viper.SetDefault("packages.reconcile_batch_size", 50)
	viper.SetDefault("packages.tx_timeout", 30*time.Second)
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment variables beat file values.
	for _, section := range []interface{}{
		&config.Database, &config.JWT, &config.Redis, &config.Storage, &config.SMTP,
	} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to apply env overrides: %w", err)
		}
	}

	return &config, nil
}
