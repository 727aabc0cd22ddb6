package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                   string   `mapstructure:"PORT"`
	Env                    string   `mapstructure:"ENV"`
	UpstreamURL            string   `mapstructure:"UPSTREAM_URL"`
	UpstreamTimeoutSeconds int      `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`
	UpstreamRetries        int      `mapstructure:"UPSTREAM_RETRIES"`
	CORSOrigins            []string `mapstructure:"CORS_ORIGINS"`
	StaticDir              string   `mapstructure:"STATIC_DIR"`
	RateLimitRPS           float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst         int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "3009")
	v.SetDefault("ENV", "development")
	v.SetDefault("UPSTREAM_URL", "http://localhost:5002")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	v.SetDefault("UPSTREAM_RETRIES", 0)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STATIC_DIR", "web")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("UPSTREAM_URL")
	v.BindEnv("UPSTREAM_TIMEOUT_SECONDS")
	v.BindEnv("UPSTREAM_RETRIES")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("STATIC_DIR")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UpstreamTimeout returns the upstream request timeout as a duration.
// A finite timeout is always enforced so a hung upstream cannot hang
// the caller.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil {
		return fmt.Errorf("UPSTREAM_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("UPSTREAM_URL must be http or https, got %q", c.UpstreamURL)
	}
	if c.UpstreamTimeoutSeconds <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive, got %d", c.UpstreamTimeoutSeconds)
	}
	if c.UpstreamRetries < 0 {
		return fmt.Errorf("UPSTREAM_RETRIES must not be negative, got %d", c.UpstreamRetries)
	}
	return nil
}
