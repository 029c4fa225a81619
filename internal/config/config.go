package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	SMS       SMSConfig
	MinIO     MinIOConfig
}

// ServerConfig controls the listener. Environment "production" switches gin to
// release mode.
type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig selects the record backend: file (default), memory or mongo.
type StoreConfig struct {
	Backend  string
	DataFile string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// AdminConfig holds the single admin credential pair. Mode "static" hands out
// Token verbatim; mode "jwt" signs short-lived tokens with Secret.
type AdminConfig struct {
	Username string
	Password string
	Token    string
	Mode     string
	Secret   string
	TokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// SMSConfig picks the notifier: log (default), noop or redis.
type SMSConfig struct {
	Notifier string
	QueueKey string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("STORE_BACKEND", "file")
	v.SetDefault("DATA_FILE", "submissions.json")
	v.SetDefault("MONGODB_DATABASE", "signupdesk")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("ADMIN_USERNAME", "test")
	v.SetDefault("ADMIN_PASSWORD", "test123")
	v.SetDefault("ADMIN_TOKEN", "token")
	v.SetDefault("ADMIN_TOKEN_MODE", "static")
	v.SetDefault("ADMIN_TOKEN_TTL", 60)
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("SMS_NOTIFIER", "log")
	v.SetDefault("SMS_QUEUE_KEY", "sms:outbox")
	v.SetDefault("MINIO_BUCKET", "signupdesk")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			StaticDir:    v.GetString("STATIC_DIR"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(v.GetString("STORE_BACKEND")),
			DataFile: v.GetString("DATA_FILE"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Token:    v.GetString("ADMIN_TOKEN"),
			Mode:     strings.ToLower(v.GetString("ADMIN_TOKEN_MODE")),
			Secret:   v.GetString("ADMIN_JWT_SECRET"),
			TokenTTL: time.Duration(v.GetInt("ADMIN_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		SMS: SMSConfig{
			Notifier: strings.ToLower(v.GetString("SMS_NOTIFIER")),
			QueueKey: v.GetString("SMS_QUEUE_KEY"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
