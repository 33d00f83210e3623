package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int `mapstructure:"WEBSERVER_PORT"`

	// Upstream API Configuration
	APIBaseURL             string `mapstructure:"API_BASE_URL" validate:"required,url"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS" validate:"gte=1"`

	// Media proxy. Empty PROXY_BASE_URL disables manifest URL rewriting.
	// PROXY_ALLOWED_HOSTS is a comma-separated list of host suffixes the
	// proxy will fetch from; empty allows any host.
	ProxyBaseURL      string `mapstructure:"PROXY_BASE_URL" validate:"omitempty,url"`
	ProxyAllowedHosts string `mapstructure:"PROXY_ALLOWED_HOSTS"`

	// Playback defaults
	DefaultTargetHeight   int    `mapstructure:"DEFAULT_TARGET_HEIGHT" validate:"gte=144"`
	PreferredSubtitleLang string `mapstructure:"PREFERRED_SUBTITLE_LANG"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Info("Environment variables bound", "config", c)
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DEFAULT_TARGET_HEIGHT", 720)
	viper.SetDefault("PREFERRED_SUBTITLE_LANG", "en")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
