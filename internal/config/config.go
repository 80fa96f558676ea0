package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mail drivers accepted by MAIL_DRIVER.
const (
	MailDriverSMTP    = "smtp"
	MailDriverMailgun = "mailgun"
	MailDriverLog     = "log"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort   string
	AppEnv    string
	AppURL    string
	LogLevel  string
	LoginPath string
	HomePath  string
	Database  DatabaseConfig
	Redis     RedisConfig

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	MediaBucket    string
	AlertTopicARN  string // empty disables SNS alerts for critical logs

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	Mail           MailConfig
	Geocoder       GeocoderConfig
	GoogleClientID string
	AllowedOrigins []string // CORS allowed origins
	TrustProxy     bool     // take client IPs from X-Forwarded-For / X-Real-Ip
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	FlashTTL time.Duration
}

// DynamoTables holds the DynamoDB table name for each cached entity.
type DynamoTables struct {
	GeocodeCache string
}

type MailConfig struct {
	Driver         string
	From           string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunAPIBase string // empty uses the library default (US region)
}

type GeocoderConfig struct {
	URL      string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
	Rate     float64
	Burst    int
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:   getEnv("APP_PORT", "3000"),
		AppEnv:    getEnv("APP_ENV", "development"),
		AppURL:    getEnv("APP_URL", "http://localhost:3000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LoginPath: getEnv("ROUTE_LOGIN", "/login"),
		HomePath:  getEnv("ROUTE_HOME", "/"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ec5"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			FlashTTL: getEnvDuration("FLASH_TTL", 5*time.Minute),
		},
		AWSRegion:      getEnv("AWS_REGION", "eu-west-2"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			GeocodeCache: getEnv("DYNAMO_TABLE_GEOCODE_CACHE", "geocode_cache"),
		},
		MediaBucket:       getEnv("S3_MEDIA_BUCKET", "ec5-media"),
		AlertTopicARN:     getEnv("SNS_ALERT_TOPIC_ARN", ""),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		Mail: MailConfig{
			Driver:         strings.ToLower(getEnv("MAIL_DRIVER", MailDriverSMTP)),
			From:           getEnv("MAIL_FROM", "noreply@example.com"),
			SMTPHost:       getEnv("SMTP_HOST", "localhost"),
			SMTPPort:       getEnv("SMTP_PORT", "1025"),
			SMTPUsername:   getEnv("SMTP_USERNAME", ""),
			SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
			MailgunDomain:  getEnv("MAILGUN_DOMAIN", ""),
			MailgunAPIKey:  getEnv("MAILGUN_API_KEY", ""),
			MailgunAPIBase: getEnv("MAILGUN_API_BASE", ""),
		},
		Geocoder: GeocoderConfig{
			URL:      getEnv("GEOCODER_URL", "https://api.opencagedata.com/geocode/v1/json"),
			APIKey:   getEnv("GEOCODER_API_KEY", ""),
			Timeout:  getEnvDuration("GEOCODER_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvDuration("GEOCODER_CACHE_TTL", 7*24*time.Hour),
			Rate:     getEnvFloat("GEOCODER_RATE", 2),
			Burst:    getEnvInt("GEOCODER_BURST", 5),
		},
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	switch c.Mail.Driver {
	case MailDriverSMTP, MailDriverLog:
	case MailDriverMailgun:
		if c.Mail.MailgunDomain == "" || c.Mail.MailgunAPIKey == "" {
			return fmt.Errorf("MAILGUN_DOMAIN and MAILGUN_API_KEY are required for the mailgun driver")
		}
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.Mail.Driver)
	}
	return nil
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
