package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from the given YAML file (optional), a .env
// file (optional), and environment variables, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		// Config file is optional; env vars and defaults still apply.
		_ = v.ReadInConfig()
	}

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()
	if cfg.Service.Debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// bindEnvironmentVariables binds well-known environment variables to
// config keys so deployments can override without a config file.
func bindEnvironmentVariables(v *viper.Viper) error {
	binds := map[string][]string{
		"service.debug":                   {"APP_DEBUG"},
		"service.port":                    {"LEAD_ENGINE_PORT"},
		"logging.level":                   {"LOG_LEVEL"},
		"logging.format":                  {"LOG_FORMAT"},
		"database.host":                   {"DB_HOST", "POSTGRES_HOST"},
		"database.port":                   {"DB_PORT", "POSTGRES_PORT"},
		"database.user":                   {"DB_USER", "POSTGRES_USER"},
		"database.password":               {"DB_PASSWORD", "POSTGRES_PASSWORD"},
		"database.database":               {"DB_NAME", "POSTGRES_DB"},
		"redis.address":                   {"REDIS_ADDRESS", "REDIS_URL"},
		"redis.password":                  {"REDIS_PASSWORD"},
		"elasticsearch.url":               {"ELASTICSEARCH_URL"},
		"elasticsearch.password":          {"ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"},
		"notifications.smtp_host":         {"SMTP_HOST"},
		"notifications.smtp_port":         {"SMTP_PORT"},
		"notifications.smtp_user":         {"SMTP_USER"},
		"notifications.password":          {"SMTP_PASSWORD"},
		"notifications.from":              {"SMTP_FROM"},
		"notifications.default_recipient": {"LEAD_ALERT_RECIPIENT"},
	}
	for key, envs := range binds {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}
