package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureDefaultSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	JWTSecret       string
	JWTIssuer       string
	MigrationsPath  string
	RunMigrations   bool
	CORSOrigins     []string
	RateLimit       string
	LogLevel        slog.Level
	ConfigFile      string
	ShutdownTimeout time.Duration

	ReceiptsDir     string
	ReceiptsBaseURL string
	ReceiptMaxBytes int64

	KafkaBrokers []string
	KafkaTopic   string

	PosthogAPIKey   string
	PosthogEndpoint string

	ReportCacheSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", insecureDefaultSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CONFIG_FILE", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("RECEIPTS_DIR", "./data/receipts")
	v.SetDefault("RECEIPTS_BASE_URL", "/receipts")
	v.SetDefault("RECEIPT_MAX_BYTES", 1_000_000)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "messflow.changes")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("REPORT_CACHE_SIZE", 256)
}

// LoadConfig loads configuration from a .env file (if present), environment
// variables and, when CONFIG_FILE is set, that file. Environment wins.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return Load(viper.New())
}

// Load reads configuration through v. It is split out so tests can feed values.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:       v.GetString("RATE_LIMIT"),
		ConfigFile:      v.GetString("CONFIG_FILE"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		ReceiptsDir:     v.GetString("RECEIPTS_DIR"),
		ReceiptsBaseURL: strings.TrimRight(v.GetString("RECEIPTS_BASE_URL"), "/"),
		ReceiptMaxBytes: v.GetInt64("RECEIPT_MAX_BYTES"),
		KafkaBrokers:    splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:      v.GetString("KAFKA_TOPIC"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
		ReportCacheSize: v.GetInt("REPORT_CACHE_SIZE"),
	}

	level, err := ParseLogLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.ReportCacheSize <= 0 {
		cfg.ReportCacheSize = 256
	}
	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL is not set")
	}
	if cfg.JWTSecret == insecureDefaultSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET not set, using insecure development key")
	}

	return cfg, nil
}

// ParseLogLevel maps debug|info|warn|error to an slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// WatchLogLevel re-reads LOG_LEVEL from the config file whenever it changes
// and applies it to levelVar. It does nothing when no config file is in use.
func WatchLogLevel(v *viper.Viper, levelVar *slog.LevelVar, logger *slog.Logger) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level, err := ParseLogLevel(v.GetString("LOG_LEVEL"))
		if err != nil {
			logger.Warn("Ignoring config change", slog.String("file", e.Name), slog.String("error", err.Error()))
			return
		}
		if level != levelVar.Level() {
			levelVar.Set(level)
			logger.Info("Log level changed", slog.String("level", level.String()))
		}
	})
	v.WatchConfig()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
