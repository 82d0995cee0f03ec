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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Extractor ExtractorConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for archiving uploaded documents. Archival is
// disabled when Bucket is empty.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ExtractorConfig holds LLM scenario extractor settings.
type ExtractorConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	BaseURL       string `mapstructure:"base_url"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FLOWCASE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FLOWCASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.static_dir", "./web")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "flowcase")
	v.SetDefault("db.password", "flowcase_secret")
	v.SetDefault("db.name", "flowcase_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (archival off until a bucket is configured)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Extractor defaults
	v.SetDefault("extractor.provider", "openai")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "gpt-4.1")
	v.SetDefault("extractor.base_url", "")
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.max_file_size_mb", 5)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "FLOWCASE_SERVER_PORT",
		"server.read_timeout":        "FLOWCASE_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "FLOWCASE_SERVER_WRITE_TIMEOUT",
		"server.environment":         "FLOWCASE_SERVER_ENVIRONMENT",
		"server.static_dir":          "FLOWCASE_SERVER_STATIC_DIR",
		"db.host":                    "FLOWCASE_DB_HOST",
		"db.port":                    "FLOWCASE_DB_PORT",
		"db.user":                    "FLOWCASE_DB_USER",
		"db.password":                "FLOWCASE_DB_PASSWORD",
		"db.name":                    "FLOWCASE_DB_NAME",
		"db.sslmode":                 "FLOWCASE_DB_SSLMODE",
		"db.max_open":                "FLOWCASE_DB_MAX_OPEN",
		"db.max_idle":                "FLOWCASE_DB_MAX_IDLE",
		"s3.region":                  "FLOWCASE_S3_REGION",
		"s3.bucket":                  "FLOWCASE_S3_BUCKET",
		"s3.endpoint":                "FLOWCASE_S3_ENDPOINT",
		"s3.access_key":              "FLOWCASE_S3_ACCESS_KEY",
		"s3.secret_key":              "FLOWCASE_S3_SECRET_KEY",
		"s3.presign_expiry":          "FLOWCASE_S3_PRESIGN_EXPIRY",
		"extractor.provider":         "FLOWCASE_EXTRACTOR_PROVIDER",
		"extractor.api_key":          "FLOWCASE_EXTRACTOR_API_KEY",
		"extractor.model":            "FLOWCASE_EXTRACTOR_MODEL",
		"extractor.base_url":         "FLOWCASE_EXTRACTOR_BASE_URL",
		"extractor.timeout_secs":     "FLOWCASE_EXTRACTOR_TIMEOUT_SECS",
		"extractor.max_file_size_mb": "FLOWCASE_EXTRACTOR_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":       "FLOWCASE_CORS_ALLOWED_ORIGINS",
		"log.level":                  "FLOWCASE_LOG_LEVEL",
		"log.format":                 "FLOWCASE_LOG_FORMAT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	// The extractor key also honors OPENAI_API_KEY so the CLI works with the
	// conventional variable.
	if v.GetString("extractor.api_key") == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			v.Set("extractor.api_key", key)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// CORS origins arrive as a comma-separated string from the environment.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}
	for i := range cfg.CORS.AllowedOrigins {
		cfg.CORS.AllowedOrigins[i] = strings.TrimSpace(cfg.CORS.AllowedOrigins[i])
	}

	return &cfg, nil
}
