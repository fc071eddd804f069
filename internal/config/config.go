package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Telegram    TelegramConfig
	Storage     StorageConfig
	HTTPClient  HTTPClientConfig
	Server      ServerConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelegramConfig holds the bot credentials used for form notifications
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIURL   string
}

// IsConfigured reports whether both the bot token and the target chat are set
func (t TelegramConfig) IsConfigured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type            string // "s3", "local" or "mock"
	LocalPath       string
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	KeyPrefix       string
	CDNHost         string
}

// HasCredentials reports whether the access key pair is present
func (s StorageConfig) HasCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// HTTPClientConfig holds settings for outbound HTTP calls
type HTTPClientConfig struct {
	Timeout time.Duration
}

// ServerConfig holds settings for the local HTTP server
type ServerConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

// DefaultHTTPClientTimeout bounds outbound Telegram and S3 calls
const DefaultHTTPClientTimeout = 15 * time.Second

const maxTimeoutSeconds = 24 * 60 * 60

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	v.SetDefault("STORAGE_TYPE", "s3")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/files")
	v.SetDefault("S3_ENDPOINT", "https://bucket.poehali.dev")
	v.SetDefault("S3_BUCKET", "files")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_USE_PATH_STYLE", true)
	v.SetDefault("S3_KEY_PREFIX", "arrurru/")
	v.SetDefault("CDN_HOST", "cdn.poehali.dev")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", DefaultHTTPClientTimeout.String())
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("MAX_BODY_BYTES", 20*1024*1024)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   v.GetString("TELEGRAM_CHAT_ID"),
			APIURL:   v.GetString("TELEGRAM_API_URL"),
		},
		Storage: StorageConfig{
			Type:            v.GetString("STORAGE_TYPE"),
			LocalPath:       v.GetString("STORAGE_LOCAL_PATH"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			UsePathStyle:    v.GetBool("S3_USE_PATH_STYLE"),
			KeyPrefix:       v.GetString("S3_KEY_PREFIX"),
			CDNHost:         v.GetString("CDN_HOST"),
		},
		HTTPClient: HTTPClientConfig{
			Timeout: parseTimeout(v.GetString("HTTP_CLIENT_TIMEOUT"), DefaultHTTPClientTimeout),
		},
		Server: ServerConfig{
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		},
	}

	return config, nil
}

// parseTimeout reads a duration such as "3s" or a bare number of seconds.
// Unparsable values and values under one second fall back.
func parseTimeout(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)

	var d time.Duration
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if !(seconds >= 1 && seconds <= maxTimeoutSeconds) {
			return fallback
		}
		d = time.Duration(seconds * float64(time.Second))
	} else if parsed, err := time.ParseDuration(value); err == nil {
		d = parsed
	}

	if d < time.Second {
		return fallback
	}
	return d
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
