package objectstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		S3Region:    "us-east-1",
		S3Bucket:    "giftkeeper-images",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "test",
		S3SecretKey: "test",
	}
}

func TestStorageKey(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	key := StorageKey(now)

	assert.True(t, strings.HasPrefix(key, "images/2024/03/07/"), key)

	// keys must be unique per call
	assert.NotEqual(t, key, StorageKey(now))
}

func TestReadURLWithEndpoint(t *testing.T) {
	c := NewClient(testConfig())
	assert.Equal(t, "http://localhost:9000/giftkeeper-images/some/key", c.ReadURL("some/key"))
}

func TestReadURLDefault(t *testing.T) {
	cfg := testConfig()
	cfg.S3Endpoint = ""
	c := NewClient(cfg)
	assert.Equal(t,
		"https://giftkeeper-images.s3.us-east-1.amazonaws.com/some/key",
		c.ReadURL("some/key"))
}

func TestUploadURLSignedForFiveMinutes(t *testing.T) {
	c := NewClient(testConfig())

	upload, err := c.UploadURL(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, upload.Key)
	assert.Contains(t, upload.UploadURL, "giftkeeper-images")
	assert.Contains(t, upload.UploadURL, "X-Amz-Expires=300")
	assert.Contains(t, upload.ReadURL, upload.Key)
}
