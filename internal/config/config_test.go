package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PRESIGN_TTL", "15m")
	t.Setenv("AI_TIMEOUT", "not-a-duration")
	t.Setenv("DB_NAME", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.PresignTTL)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "shoutspot", cfg.DBName)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTSecret: "s", DBPassword: "p", S3BucketName: "b"}
	require.NoError(t, cfg.Validate())

	cfg.S3BucketName = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
}

func TestObjectBaseURL(t *testing.T) {
	cfg := &Config{S3BucketName: "media", AWSRegion: "eu-west-1"}
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com", cfg.ObjectBaseURL())

	cfg.S3PublicBaseURL = "https://cdn.example.com"
	assert.Equal(t, "https://cdn.example.com", cfg.ObjectBaseURL())
}
