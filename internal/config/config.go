package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"
)

type (
	Config struct {
		Host       string `mapstructure:"HOST"`
		Port       string `mapstructure:"PORT"`
		DBHost     string `mapstructure:"DB_HOST"`
		DBPort     string `mapstructure:"DB_PORT"`
		DBUser     string `mapstructure:"DB_USER"`
		DBPassword string `mapstructure:"DB_PASSWORD"`
		DBName     string `mapstructure:"DB_NAME"`
		DBSSLMode  string `mapstructure:"DB_SSL_MODE"`

		S3Region    string `mapstructure:"S3_REGION"`
		S3Bucket    string `mapstructure:"S3_BUCKET"`
		S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
		S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
		S3SecretKey string `mapstructure:"S3_SECRET_KEY"`

		ReminderLookaheadDays int    `mapstructure:"REMINDER_LOOKAHEAD_DAYS"`
		ReminderCron          string `mapstructure:"REMINDER_CRON"`

		LocalStorePath string `mapstructure:"LOCAL_STORE_PATH"`
	}
)

func NewConfig() (*Config, error) {
	viper.SetEnvPrefix("GIFTKEEPER")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "1323")
	viper.SetDefault("DB_HOST", "0.0.0.0")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "db")
	viper.SetDefault("DB_SSL_MODE", sslModeDisable)
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "giftkeeper-images")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY", "")
	viper.SetDefault("S3_SECRET_KEY", "")
	viper.SetDefault("REMINDER_LOOKAHEAD_DAYS", 7)
	viper.SetDefault("REMINDER_CRON", "0 9 * * *")
	viper.SetDefault("LOCAL_STORE_PATH", "")

	envs := []string{
		"HOST", "PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"S3_REGION", "S3_BUCKET", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"REMINDER_LOOKAHEAD_DAYS", "REMINDER_CRON", "LOCAL_STORE_PATH",
	}
	for _, key := range envs {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	validSSLValues := []string{sslModeDisable, sslModeRequire}
	sslOK := false
	for _, validValue := range validSSLValues {
		if cfg.DBSSLMode == validValue {
			sslOK = true
			break
		}
	}
	if !sslOK {
		return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", cfg.DBSSLMode))
	}
	if cfg.ReminderLookaheadDays < 0 {
		return errors.New(fmt.Sprintf("reminder lookahead days is invalid: %d", cfg.ReminderLookaheadDays))
	}
	return nil
}
