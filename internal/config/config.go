package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ServerPort    string
	GinMode       string
	PublicBaseURL string
	CORSOrigins   []string

	JwtSecret     string
	Issuer        string
	AdminTokenTTL time.Duration
	OwnerTokenTTL time.Duration
	AdminUsername string
	AdminPassword string

	StorageDriver string
	DbHost        string
	DbPort        string
	DbUser        string
	DbPassword    string
	DbName        string
	DbSSLMode     string

	ObjectStore    string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MaxUploadBytes int64
	MaxGuestPhotos int

	RedisURL     string
	AmqpURL      string
	AmqpExchange string

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFrom        string
	EmailFromName    string
	NotifyEmails     []string
	TelegramBotToken string
	TelegramChatID   int64

	AuditRetentionDays int
	LogLevel           string
	LogFormat          string
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
	ObjectStoreMinio      = "minio"
	ObjectStoreMemory     = "memory"
)

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	GinMode = getEnv("GIN_MODE", "release")
	PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/")
	CORSOrigins = getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "luxserv365")
	AdminTokenTTL = getDuration("ADMIN_TOKEN_TTL", 12*time.Hour)
	OwnerTokenTTL = getDuration("OWNER_TOKEN_TTL", 72*time.Hour)
	AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	AdminPassword = getEnv("ADMIN_PASSWORD", "")

	StorageDriver = getEnv("STORAGE_DRIVER", StorageDriverPostgres)
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "luxserv")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	ObjectStore = getEnv("OBJECT_STORE", ObjectStoreMinio)
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "luxserv")
	MinioUseSSL = getBool("MINIO_USE_SSL", false)
	MaxUploadBytes = int64(getInt("MAX_UPLOAD_MB", 10)) << 20
	MaxGuestPhotos = getInt("MAX_GUEST_PHOTOS", 10)

	RedisURL = getEnv("REDIS_URL", "")
	AmqpURL = getEnv("AMQP_URL", "")
	AmqpExchange = getEnv("AMQP_EXCHANGE", "luxserv.events")

	SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	SMTPPort = getInt("SMTP_PORT", 587)
	SMTPUsername = getEnv("SMTP_USERNAME", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	EmailFrom = getEnv("EMAIL_FROM", "")
	EmailFromName = getEnv("EMAIL_FROM_NAME", "LuxServ 365")
	NotifyEmails = getList("NOTIFY_EMAILS", nil)
	TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	TelegramChatID, _ = strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 30)
	LogLevel = getEnv("LOG_LEVEL", "info")
	LogFormat = getEnv("LOG_FORMAT", "text")
}

// SMTPEnabled reports whether outbound mail can be delivered.
func SMTPEnabled() bool {
	return SMTPUsername != "" && SMTPPassword != "" && EmailFrom != ""
}

// TelegramEnabled reports whether staff alerts can be sent to Telegram.
func TelegramEnabled() bool {
	return TelegramBotToken != "" && TelegramChatID != 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
