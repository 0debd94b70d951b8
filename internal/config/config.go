package config

import (
	"log/slog"
	"os"
	"strconv"
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

	// Staff tokens
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// End-user tokens (issued after Google sign-in)
	UserJWTSecret   string
	UserTokenExpiry time.Duration
	GoogleClientID  string

	// Bootstrap token accepted by the staff registration endpoint
	AdminToken string

	// Image host
	GCSBucketName string
	GCSUploadPath string

	// Cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool
	CacheTTL      time.Duration

	// Visit request events
	RabbitMQURL string
	EventsQueue string

	// Server
	Port        string
	CORSOrigins string
	BodyLimit   int
	AppEnv      string
	SentryDSN   string

	LogRetentionDays int
}

// Load reads the process environment. A .env file in the working directory
// is applied first when it exists; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "real_estate"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       jwtSecret,
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),

		UserJWTSecret:   getEnv("USER_JWT_SECRET", jwtSecret),
		UserTokenExpiry: parseDuration(getEnv("USER_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		GCSBucketName: getEnv("GCS_BUCKET_NAME", ""),
		GCSUploadPath: getEnv("GCS_UPLOAD_PATH", "uploads/"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		RedisTLS:      getEnv("REDIS_TLS", "false") == "true",
		CacheTTL:      parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		EventsQueue: getEnv("EVENTS_QUEUE", "visit_request.events"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimit:   parseInt(getEnv("BODY_LIMIT_BYTES", "33554432"), 32*1024*1024),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
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

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
