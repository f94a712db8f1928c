package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Port        string `mapstructure:"PORT"`
	AppEnv      string `mapstructure:"APP_ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Expo push endpoint; overridable for tests.
	ExpoPushURL string `mapstructure:"EXPO_PUSH_URL"`

	RateLimitPerUser int `mapstructure:"RATE_LIMIT_PER_USER"`
	RateLimitPerIP   int `mapstructure:"RATE_LIMIT_PER_IP"`
}

// LoadConfig loads the configuration from a .env file and environment
// variables. The returned struct is handed to the composition root; nothing
// reads configuration through package globals.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send")
	viper.SetDefault("RATE_LIMIT_PER_USER", 60)
	viper.SetDefault("RATE_LIMIT_PER_IP", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return nil
}
