package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	StoreModeMemory   = "memory"
	StoreModePostgres = "postgres"
)

type HTTPConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	Mode string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type BillingConfig struct {
	DefaultMarkupPct     float64
	RemittanceTaxRatePct float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	DB          DBConfig
	Auth        AuthConfig
	Billing     BillingConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Store: StoreConfig{
			Mode: v.GetString("STORE_MODE"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Billing: BillingConfig{
			DefaultMarkupPct:     v.GetFloat64("DEFAULT_MARKUP_PCT"),
			RemittanceTaxRatePct: v.GetFloat64("REMITTANCE_TAX_RATE_PCT"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Store.Mode == "" {
		cfg.Store.Mode = StoreModeMemory
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Mode {
	case StoreModeMemory:
	case StoreModePostgres:
		if cfg.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_MODE=postgres")
		}
	default:
		return fmt.Errorf("STORE_MODE must be %q or %q", StoreModeMemory, StoreModePostgres)
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Billing.RemittanceTaxRatePct < 0 {
		return fmt.Errorf("REMITTANCE_TAX_RATE_PCT cannot be negative")
	}
	return nil
}
