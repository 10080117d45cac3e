package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (tokens are issued by the auth service, verified here)
	JWTSecret string

	// Object storage
	AWSRegion       string
	S3BucketName    string
	S3Endpoint      string
	S3PublicBaseURL string
	PresignTTL      time.Duration

	// Spam/sentiment classifier
	AIBaseURL string
	AITimeout time.Duration

	// Signed URL cache (optional)
	RedisURL string

	// Server
	Port        string
	CORSOrigins string

	// Observability
	SentryDSN string
	AppEnv    string
	LogLevel  string
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "shoutspot"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		S3BucketName:    getEnv("S3_BUCKET_NAME", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		PresignTTL:      parseDuration(getEnv("PRESIGN_TTL", "1h"), time.Hour),

		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AITimeout: parseDuration(getEnv("AI_TIMEOUT", "30s"), 30*time.Second),

		RedisURL: getEnv("REDIS_URL", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	required := []struct{ key, val string }{
		{"JWT_SECRET", c.JWTSecret},
		{"DB_PASSWORD", c.DBPassword},
		{"S3_BUCKET_NAME", c.S3BucketName},
	}
	for _, r := range required {
		if r.val == "" {
			return fmt.Errorf("%s environment variable is required", r.key)
		}
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// ObjectBaseURL is the prefix used to build the absolute URL stored for an
// uploaded object. Falls back to the virtual-hosted S3 address.
func (c *Config) ObjectBaseURL() string {
	if c.S3PublicBaseURL != "" {
		return c.S3PublicBaseURL
	}
	return "https://" + c.S3BucketName + ".s3." + c.AWSRegion + ".amazonaws.com"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
