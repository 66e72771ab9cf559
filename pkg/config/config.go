package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Live stats provider
	LiveBaseURL             string        `mapstructure:"LIVE_BASE_URL"`
	LiveUserAgent           string        `mapstructure:"LIVE_USER_AGENT"`
	LiveRateLimit           float64       `mapstructure:"LIVE_RATE_LIMIT"`
	LiveCacheTTL            time.Duration `mapstructure:"LIVE_CACHE_TTL"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Season selection (0 = derive from the clock)
	CurrentSeason int `mapstructure:"CURRENT_SEASON"`

	// Background jobs
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	LivePrewarmSchedule  string `mapstructure:"LIVE_PREWARM_SCHEDULE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "sqlite://lahman.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("LIVE_BASE_URL", "https://www.baseball-reference.com")
	viper.SetDefault("LIVE_USER_AGENT", "dugout/1.0 (personal stats lookup)")
	viper.SetDefault("LIVE_RATE_LIMIT", 0.8) // requests per second, be polite
	viper.SetDefault("LIVE_CACHE_TTL", "30m")
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "20s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5) // trip after 5 consecutive failures
	viper.SetDefault("CURRENT_SEASON", 0)
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	viper.SetDefault("LIVE_PREWARM_SCHEDULE", "0 6 * * *") // 6 AM daily

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

// Season returns the configured season year, falling back to the current year.
func (c *Config) Season() int {
	if c.CurrentSeason > 0 {
		return c.CurrentSeason
	}
	return time.Now().Year()
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
