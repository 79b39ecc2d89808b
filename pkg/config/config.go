package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Admin     AdminConfig
	Site      SiteConfig
	SMTP      SMTPConfig
	Postmark  PostmarkConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Tracing   TracingConfig
	Sentry    SentryConfig
	RateLimit RateLimitConfig
	Breaker   BreakerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ServiceName     string
	Version         string
	ReadTimeout     int
	WriteTimeout    int
	RequestTimeout  int // seconds, applied to /api routes
	ShutdownTimeout int
	CORSOrigins     string // Comma-separated list of allowed origins
	MaxBodyBytes    int64
	StaticDir       string
	LogLevel        string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	MinConns       int
	MigrateOnStart bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL int // seconds
}

// SessionConfig holds the admin cookie session settings
type SessionConfig struct {
	Name   string
	Secret string
	MaxAge int // seconds
	Secure bool
}

// AdminConfig holds the single admin identity
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt, preferred over Password
	TOTPSecret   string
}

// SiteConfig holds public site settings
type SiteConfig struct {
	BaseURL             string
	DefaultLanguage     string
	BlogDefaultLanguage string
	ContentFile         string
	Author              string
	Publisher           string
	PublisherLogo       string
}

// SMTPConfig holds the operator notification mailbox
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
	Timeout       int // seconds
}

// PostmarkConfig holds the transactional email provider settings
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	From         string
	ReplyTo      string
	Timeout      int // seconds
}

// StorageConfig holds upload storage settings
type StorageConfig struct {
	Provider        string // local or s3
	LocalDir        string
	PublicBaseURL   string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	MaxUploadBytes  int64
}

// SecretsConfig selects an external secret provider for credentials
type SecretsConfig struct {
	Provider       string // vault, aws, gcp, kubernetes or empty
	VaultAddress   string
	VaultToken     string
	VaultMount     string
	AWSRegion      string
	GCPProjectID   string
	KubernetesPath string
	CacheTTL       int // seconds
	SMTPRef        string
	PostmarkRef    string
	DatabaseRef    string
	SessionRef     string
	AdminRef       string
}

// TracingConfig holds OpenTelemetry exporter settings
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// RateLimitConfig holds the admin login throttle settings. It needs Redis.
type RateLimitConfig struct {
	Enabled       bool
	LoginAttempts int
	WindowSeconds int
	RedisPrefix   string
}

// BreakerConfig tunes retries and circuit breakers around the email channels
type BreakerConfig struct {
	IntervalSeconds  int
	TimeoutSeconds   int
	FailureThreshold int
	RetryAttempts    int
}

// SentryConfig holds error reporting settings
type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	defaultLang := strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en"))

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ServiceName:     serviceName,
			Version:         getEnv("SERVICE_VERSION", "1.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 30),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", 20),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 15),
			CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
			MaxBodyBytes:    getEnvAsInt64("MAX_BODY_BYTES", 1<<20),
			StaticDir:       getEnv("STATIC_DIR", "./public"),
			LogLevel:        getEnv("LOG_LEVEL", ""),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "landing"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 2),
			MigrateOnStart: getEnvAsBool("DB_MIGRATE_ON_START", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsInt("REDIS_CACHE_TTL", 300),
		},
		Session: SessionConfig{
			Name:   getEnv("SESSION_NAME", "landing_session"),
			Secret: getEnv("SESSION_SECRET", "change-me-in-production-please"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TOTPSecret:   getEnv("ADMIN_TOTP_SECRET", ""),
		},
		Site: SiteConfig{
			BaseURL:             strings.TrimRight(getEnv("SITE_BASE_URL", "http://localhost:8080"), "/"),
			DefaultLanguage:     defaultLang,
			BlogDefaultLanguage: strings.ToLower(getEnv("BLOG_DEFAULT_LANGUAGE", defaultLang)),
			ContentFile:         getEnv("SITE_CONTENT_FILE", ""),
			Author:              getEnv("SITE_AUTHOR", "Neuro Educatimo"),
			Publisher:           getEnv("SITE_PUBLISHER", "Neuro Educatimo"),
			PublisherLogo:       getEnv("SITE_PUBLISHER_LOGO", ""),
		},
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", ""),
			Port:          getEnvAsInt("SMTP_PORT", 587),
			Username:      getEnv("SMTP_USER", ""),
			Password:      getEnv("SMTP_PASS", ""),
			From:          getEnv("SMTP_FROM", ""),
			OperatorEmail: getEnv("OPERATOR_EMAIL", ""),
			Timeout:       getEnvAsInt("SMTP_TIMEOUT", 10),
		},
		Postmark: PostmarkConfig{
			ServerToken:  getEnv("POSTMARK_SERVER_TOKEN", ""),
			AccountToken: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
			From:         getEnv("POSTMARK_FROM", ""),
			ReplyTo:      getEnv("POSTMARK_REPLY_TO", ""),
			Timeout:      getEnvAsInt("POSTMARK_TIMEOUT", 10),
		},
		Storage: StorageConfig{
			Provider:        getEnv("STORAGE_PROVIDER", "local"),
			LocalDir:        getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicBaseURL:   strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
			Bucket:          getEnv("STORAGE_BUCKET", ""),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnvAsBool("STORAGE_USE_PATH_STYLE", false),
			MaxUploadBytes:  getEnvAsInt64("STORAGE_MAX_UPLOAD_BYTES", 5<<20),
		},
		Secrets: SecretsConfig{
			Provider:       getEnv("SECRETS_PROVIDER", ""),
			VaultAddress:   getEnv("VAULT_ADDR", ""),
			VaultToken:     getEnv("VAULT_TOKEN", ""),
			VaultMount:     getEnv("VAULT_MOUNT", "secret"),
			AWSRegion:      getEnv("SECRETS_AWS_REGION", "us-east-1"),
			GCPProjectID:   getEnv("SECRETS_GCP_PROJECT", ""),
			KubernetesPath: getEnv("SECRETS_K8S_PATH", "/var/run/secrets/landing"),
			CacheTTL:       getEnvAsInt("SECRETS_CACHE_TTL", 300),
			SMTPRef:        getEnv("SECRETS_SMTP_REF", ""),
			PostmarkRef:    getEnv("SECRETS_POSTMARK_REF", ""),
			DatabaseRef:    getEnv("SECRETS_DATABASE_REF", ""),
			SessionRef:     getEnv("SECRETS_SESSION_REF", ""),
			AdminRef:       getEnv("SECRETS_ADMIN_REF", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvAsFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			TracesSampleRate: getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvAsBool("LOGIN_RATE_LIMIT_ENABLED", true),
			LoginAttempts: getEnvAsInt("LOGIN_RATE_LIMIT_ATTEMPTS", 10),
			WindowSeconds: getEnvAsInt("LOGIN_RATE_LIMIT_WINDOW", 900),
			RedisPrefix:   getEnv("RATE_LIMIT_REDIS_PREFIX", "rl"),
		},
		Breaker: BreakerConfig{
			IntervalSeconds:  getEnvAsInt("EMAIL_BREAKER_INTERVAL", 60),
			TimeoutSeconds:   getEnvAsInt("EMAIL_BREAKER_TIMEOUT", 30),
			FailureThreshold: getEnvAsInt("EMAIL_BREAKER_FAILURES", 5),
			RetryAttempts:    getEnvAsInt("EMAIL_RETRY_ATTEMPTS", 1),
		},
	}

	if cfg.Server.Environment == "production" && cfg.Session.Secret == "change-me-in-production-please" && cfg.Secrets.SessionRef == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// MigrationURL returns the URL form required by the migration driver
func (c *DatabaseConfig) MigrationURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// CacheTTLDuration returns the article cache TTL
func (c *RedisConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Window returns the rate limit window
func (c *RateLimitConfig) Window() time.Duration {
	if c.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.WindowSeconds) * time.Second
}

// Enabled reports whether operator notifications can be sent
func (c *SMTPConfig) Enabled() bool {
	return c.Host != "" && c.OperatorEmail != ""
}

// Enabled reports whether transactional email can be sent
func (c *PostmarkConfig) Enabled() bool {
	return c.ServerToken != "" && c.From != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
