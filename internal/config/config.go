package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Form    FormConfig    `mapstructure:"form"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

type StoreConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

type AdminConfig struct {
	Password  string `mapstructure:"password"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// FormConfig controls the submission window. Deadline is RFC 3339; empty
// means the form never closes.
type FormConfig struct {
	Deadline string `mapstructure:"deadline"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from config.yaml (if present) with environment
// overrides such as ADMIN_PASSWORD and SERVER_PORT. A local .env file is
// loaded first when it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindKeys registers every key so AutomaticEnv sees it even when no config
// file mentions it.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.port", "server.allowed_origins", "server.rate_limit_rps", "server.rate_limit_burst",
		"store.data_dir",
		"admin.password", "admin.jwt_secret",
		"form.deadline",
		"logging.level", "logging.format",
	} {
		v.SetDefault(key, v.Get(key))
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 5
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 10
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "./data"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validate(cfg *Config) error {
	if cfg.Admin.Password == "" {
		return fmt.Errorf("admin.password is required")
	}
	if cfg.Admin.JWTSecret == "" {
		return fmt.Errorf("admin.jwt_secret is required")
	}
	if _, err := cfg.ParseDeadline(); err != nil {
		return err
	}
	return nil
}

// ParseDeadline returns the submission deadline, or the zero time when the
// form never closes.
func (c *Config) ParseDeadline() (time.Time, error) {
	if c.Form.Deadline == "" {
		return time.Time{}, nil
	}
	deadline, err := time.Parse(time.RFC3339, c.Form.Deadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("form.deadline must be RFC 3339: %w", err)
	}
	return deadline, nil
}
