package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "1323", cfg.Port)
	assert.Equal(t, 7, cfg.ReminderLookaheadDays)
	assert.Equal(t, "0 9 * * *", cfg.ReminderCron)
}

func TestNewConfigFromEnv(t *testing.T) {
	os.Setenv("GIFTKEEPER_REMINDER_LOOKAHEAD_DAYS", "14")
	os.Setenv("GIFTKEEPER_S3_BUCKET", "test-bucket")
	defer os.Unsetenv("GIFTKEEPER_REMINDER_LOOKAHEAD_DAYS")
	defer os.Unsetenv("GIFTKEEPER_S3_BUCKET")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.ReminderLookaheadDays)
	assert.Equal(t, "test-bucket", cfg.S3Bucket)
}

func TestNewConfigInvalidSSLMode(t *testing.T) {
	os.Setenv("GIFTKEEPER_DB_SSL_MODE", "whatever")
	defer os.Unsetenv("GIFTKEEPER_DB_SSL_MODE")

	_, err := NewConfig()
	assert.Error(t, err)
}
