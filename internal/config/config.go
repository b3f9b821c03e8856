package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the dotenv file read when no explicit path is given.
const DefaultEnvFile = "configs/.env"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	ProvidersFile  string `mapstructure:"providers_file"`
	PublishersFile string `mapstructure:"publishers_file"`

	HTTPAddr      string `mapstructure:"http_addr"`
	ProxyUpstream string `mapstructure:"proxy_upstream"`

	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	EnrichImages        bool          `mapstructure:"enrich_images"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`
}

// Load reads configuration from an optional dotenv file and environment
// variables. An empty envFile means DefaultEnvFile; a missing file is ignored.
func Load(envFile string) (*Config, error) {
	if strings.TrimSpace(envFile) == "" {
		envFile = DefaultEnvFile
	}
	_ = godotenv.Load(envFile)

	v := viper.New()

	v.SetDefault("app_name", "cryptonews-reader")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("providers_file", "./configs/providers.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("http_addr", "127.0.0.1:8080")
	v.SetDefault("proxy_upstream", "https://min-api.cryptocompare.com")
	v.SetDefault("fetch_timeout_seconds", 15)
	v.SetDefault("enrich_images", false)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/reader.db")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	if strings.TrimSpace(c.ProxyUpstream) != "" &&
		!strings.HasPrefix(c.ProxyUpstream, "http://") && !strings.HasPrefix(c.ProxyUpstream, "https://") {
		return fmt.Errorf("invalid proxy_upstream %q (must be an http(s) url)", c.ProxyUpstream)
	}
	return nil
}
