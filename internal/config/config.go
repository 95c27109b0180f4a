package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log     LogConfig
	Issuers IssuersConfig
	Batch   BatchConfig
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Email   EmailConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IssuersConfig holds the canonical legal names used to classify documents.
type IssuersConfig struct {
	Mogli string `mapstructure:"mogli"`
	SDI   string `mapstructure:"sdi"`
	JLL   string `mapstructure:"jll"`
}

// BatchConfig holds invoice-mode batch settings.
type BatchConfig struct {
	Workers      int    `mapstructure:"workers"`
	Recursive    bool   `mapstructure:"recursive"`
	WorkbookName string `mapstructure:"workbook_name"`
	FailuresName string `mapstructure:"failures_name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
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

// S3Config holds archival bucket settings.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds run summary delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	To          []string `mapstructure:"to"`
}

// Load reads configuration from environment variables with the INVEX_ prefix and,
// when path is non-empty, from the given config file. Environment wins over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Issuer names
	v.SetDefault("issuers.mogli", "Mogli Labs (India) Private Limited")
	v.SetDefault("issuers.sdi", "SDI Facility Solutions Private Limited")
	v.SetDefault("issuers.jll", "Jones Lang LaSalle Property Consultants (India) Private Limited")

	// Batch defaults
	v.SetDefault("batch.workers", 1)
	v.SetDefault("batch.recursive", false)
	v.SetDefault("batch.workbook_name", "invoices.xlsx")
	v.SetDefault("batch.failures_name", "failures.csv")

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_upload_mb", 25)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.cors_origins", "")

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invex")
	v.SetDefault("db.password", "invex_secret")
	v.SetDefault("db.name", "invex_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "invex-reports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "runs")
	v.SetDefault("s3.presign_expiry", 86400)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@invex.local")
	v.SetDefault("email.from_name", "Invex")
	v.SetDefault("email.to", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"log.level":            "INVEX_LOG_LEVEL",
		"log.format":           "INVEX_LOG_FORMAT",
		"issuers.mogli":        "INVEX_ISSUERS_MOGLI",
		"issuers.sdi":          "INVEX_ISSUERS_SDI",
		"issuers.jll":          "INVEX_ISSUERS_JLL",
		"batch.workers":        "INVEX_BATCH_WORKERS",
		"batch.recursive":      "INVEX_BATCH_RECURSIVE",
		"batch.workbook_name":  "INVEX_BATCH_WORKBOOK_NAME",
		"batch.failures_name":  "INVEX_BATCH_FAILURES_NAME",
		"server.port":          "INVEX_SERVER_PORT",
		"server.read_timeout":  "INVEX_SERVER_READ_TIMEOUT",
		"server.write_timeout": "INVEX_SERVER_WRITE_TIMEOUT",
		"server.max_upload_mb": "INVEX_SERVER_MAX_UPLOAD_MB",
		"server.jwt_secret":    "INVEX_SERVER_JWT_SECRET",
		"server.cors_origins":  "INVEX_SERVER_CORS_ORIGINS",
		"db.enabled":           "INVEX_DB_ENABLED",
		"db.host":              "INVEX_DB_HOST",
		"db.port":              "INVEX_DB_PORT",
		"db.user":              "INVEX_DB_USER",
		"db.password":          "INVEX_DB_PASSWORD",
		"db.name":              "INVEX_DB_NAME",
		"db.sslmode":           "INVEX_DB_SSLMODE",
		"db.max_open":          "INVEX_DB_MAX_OPEN",
		"db.max_idle":          "INVEX_DB_MAX_IDLE",
		"s3.enabled":           "INVEX_S3_ENABLED",
		"s3.region":            "INVEX_S3_REGION",
		"s3.bucket":            "INVEX_S3_BUCKET",
		"s3.endpoint":          "INVEX_S3_ENDPOINT",
		"s3.access_key":        "INVEX_S3_ACCESS_KEY",
		"s3.secret_key":        "INVEX_S3_SECRET_KEY",
		"s3.prefix":            "INVEX_S3_PREFIX",
		"s3.presign_expiry":    "INVEX_S3_PRESIGN_EXPIRY",
		"email.provider":       "INVEX_EMAIL_PROVIDER",
		"email.region":         "INVEX_EMAIL_REGION",
		"email.from_address":   "INVEX_EMAIL_FROM_ADDRESS",
		"email.from_name":      "INVEX_EMAIL_FROM_NAME",
		"email.to":             "INVEX_EMAIL_TO",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Issuers = IssuersConfig{
		Mogli: v.GetString("issuers.mogli"),
		SDI:   v.GetString("issuers.sdi"),
		JLL:   v.GetString("issuers.jll"),
	}
	cfg.Batch = BatchConfig{
		Workers:      v.GetInt("batch.workers"),
		Recursive:    v.GetBool("batch.recursive"),
		WorkbookName: v.GetString("batch.workbook_name"),
		FailuresName: v.GetString("batch.failures_name"),
	}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
		JWTSecret:    v.GetString("server.jwt_secret"),
		CORSOrigins:  splitList(v.GetStringSlice("server.cors_origins")),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        v.GetString("s3.prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		To:          splitList(v.GetStringSlice("email.to")),
	}

	if cfg.Batch.Workers < 1 {
		cfg.Batch.Workers = 1
	}

	return cfg, nil
}

// splitList flattens comma-separated entries, dropping empty ones. Env vars arrive as a
// single comma-separated value while config files may use a YAML list.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
