package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	S3      S3Config
	LLM     LLMConfig
	Extract ExtractConfig
	Chat    ChatConfig
	Email   EmailConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	Password    string        `mapstructure:"password"`
	Name        string        `mapstructure:"name"`
	SSLMode     string        `mapstructure:"sslmode"`
	MaxOpen     int           `mapstructure:"max_open"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenExpiry       time.Duration `mapstructure:"token_expiry"`
	Issuer            string        `mapstructure:"issuer"`
	AdminEmail        string        `mapstructure:"admin_email"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"` // bcrypt
}

// S3Config holds AWS S3 settings for bill-file archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LLMConfig holds settings for the OpenAI-compatible chat/vision endpoint.
type LLMConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	APIKey           string `mapstructure:"api_key"`
	ChatModel        string `mapstructure:"chat_model"`
	VisionModel      string `mapstructure:"vision_model"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	RetryBackoffSecs int    `mapstructure:"retry_backoff_secs"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	MinPDFTextChars int `mapstructure:"min_pdf_text_chars"`
	MaxPages        int `mapstructure:"max_pages"`
	MaxRows         int `mapstructure:"max_rows"`
	Concurrency     int `mapstructure:"concurrency"`
}

// ChatConfig holds conversation turn settings.
type ChatConfig struct {
	HistoryWindow int `mapstructure:"history_window"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CLAIMLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "claimlens")
	v.SetDefault("db.password", "claimlens_secret")
	v.SetDefault("db.name", "claimlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_lifetime", "30m")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "1h")
	v.SetDefault("auth.issuer", "claimlens")
	v.SetDefault("auth.admin_email", "admin@claimlens.local")
	v.SetDefault("auth.admin_password_hash", "")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "claimlens-bills")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// LLM defaults
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.chat_model", "gpt-4o-mini")
	v.SetDefault("llm.vision_model", "gpt-4o-mini")
	v.SetDefault("llm.timeout_secs", 90)
	v.SetDefault("llm.retry_backoff_secs", 2)

	// Extract defaults
	v.SetDefault("extract.min_pdf_text_chars", 80)
	v.SetDefault("extract.max_pages", 50)
	v.SetDefault("extract.max_rows", 2000)
	v.SetDefault("extract.concurrency", 4)

	// Chat defaults
	v.SetDefault("chat.history_window", 20)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@claimlens.local")
	v.SetDefault("email.from_name", "ClaimLens")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "CLAIMLENS_SERVER_PORT",
		"server.read_timeout":        "CLAIMLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "CLAIMLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":         "CLAIMLENS_SERVER_ENVIRONMENT",
		"db.host":                    "CLAIMLENS_DB_HOST",
		"db.port":                    "CLAIMLENS_DB_PORT",
		"db.user":                    "CLAIMLENS_DB_USER",
		"db.password":                "CLAIMLENS_DB_PASSWORD",
		"db.name":                    "CLAIMLENS_DB_NAME",
		"db.sslmode":                 "CLAIMLENS_DB_SSLMODE",
		"db.max_open":                "CLAIMLENS_DB_MAX_OPEN",
		"db.max_idle":                "CLAIMLENS_DB_MAX_IDLE",
		"db.max_lifetime":            "CLAIMLENS_DB_MAX_LIFETIME",
		"auth.jwt_secret":            "CLAIMLENS_AUTH_JWT_SECRET",
		"auth.token_expiry":          "CLAIMLENS_AUTH_TOKEN_EXPIRY",
		"auth.issuer":                "CLAIMLENS_AUTH_ISSUER",
		"auth.admin_email":           "CLAIMLENS_AUTH_ADMIN_EMAIL",
		"auth.admin_password_hash":   "CLAIMLENS_AUTH_ADMIN_PASSWORD_HASH",
		"s3.region":                  "CLAIMLENS_S3_REGION",
		"s3.bucket":                  "CLAIMLENS_S3_BUCKET",
		"s3.endpoint":                "CLAIMLENS_S3_ENDPOINT",
		"s3.access_key":              "CLAIMLENS_S3_ACCESS_KEY",
		"s3.secret_key":              "CLAIMLENS_S3_SECRET_KEY",
		"s3.max_file_size_mb":        "CLAIMLENS_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":          "CLAIMLENS_S3_PRESIGN_EXPIRY",
		"llm.base_url":               "CLAIMLENS_LLM_BASE_URL",
		"llm.api_key":                "CLAIMLENS_LLM_API_KEY",
		"llm.chat_model":             "CLAIMLENS_LLM_CHAT_MODEL",
		"llm.vision_model":           "CLAIMLENS_LLM_VISION_MODEL",
		"llm.timeout_secs":           "CLAIMLENS_LLM_TIMEOUT_SECS",
		"llm.retry_backoff_secs":     "CLAIMLENS_LLM_RETRY_BACKOFF_SECS",
		"extract.min_pdf_text_chars": "CLAIMLENS_EXTRACT_MIN_PDF_TEXT_CHARS",
		"extract.max_pages":          "CLAIMLENS_EXTRACT_MAX_PAGES",
		"extract.max_rows":           "CLAIMLENS_EXTRACT_MAX_ROWS",
		"extract.concurrency":        "CLAIMLENS_EXTRACT_CONCURRENCY",
		"chat.history_window":        "CLAIMLENS_CHAT_HISTORY_WINDOW",
		"email.provider":             "CLAIMLENS_EMAIL_PROVIDER",
		"email.region":               "CLAIMLENS_EMAIL_REGION",
		"email.from_address":         "CLAIMLENS_EMAIL_FROM_ADDRESS",
		"email.from_name":            "CLAIMLENS_EMAIL_FROM_NAME",
		"cors.allowed_origins":       "CLAIMLENS_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAIMLENS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:        v.GetString("db.host"),
		Port:        v.GetInt("db.port"),
		User:        v.GetString("db.user"),
		Password:    v.GetString("db.password"),
		Name:        v.GetString("db.name"),
		SSLMode:     v.GetString("db.sslmode"),
		MaxOpen:     v.GetInt("db.max_open"),
		MaxIdle:     v.GetInt("db.max_idle"),
		MaxLifetime: v.GetDuration("db.max_lifetime"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret:         v.GetString("auth.jwt_secret"),
		TokenExpiry:       v.GetDuration("auth.token_expiry"),
		Issuer:            v.GetString("auth.issuer"),
		AdminEmail:        v.GetString("auth.admin_email"),
		AdminPasswordHash: v.GetString("auth.admin_password_hash"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.LLM = LLMConfig{
		BaseURL:          v.GetString("llm.base_url"),
		APIKey:           v.GetString("llm.api_key"),
		ChatModel:        v.GetString("llm.chat_model"),
		VisionModel:      v.GetString("llm.vision_model"),
		TimeoutSecs:      v.GetInt("llm.timeout_secs"),
		RetryBackoffSecs: v.GetInt("llm.retry_backoff_secs"),
	}
	cfg.Extract = ExtractConfig{
		MinPDFTextChars: v.GetInt("extract.min_pdf_text_chars"),
		MaxPages:        v.GetInt("extract.max_pages"),
		MaxRows:         v.GetInt("extract.max_rows"),
		Concurrency:     v.GetInt("extract.concurrency"),
	}
	cfg.Chat = ChatConfig{
		HistoryWindow: v.GetInt("chat.history_window"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
