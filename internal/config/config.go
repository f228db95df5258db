package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	applog "bookstore/internal/log"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	LogLevel    string
	CORSOrigins string
	BcryptCost  int

	// Login throttling per client IP. A zero limit disables it.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// OpenTelemetry metrics export. An empty endpoint keeps metrics in-process only.
	OTLPEndpoint   string
	OTLPHeaders    string
	OTLPInsecure   bool
	ServiceName    string
	ServiceVersion string
}

// Load reads an optional .env file, then the environment, falling back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		applog.Info(nil, "config.dotenv.skip", map[string]any{"err": err.Error()})
	}

	cfg := Config{
		Port:        getEnv("PORT", "5000"),
		DBDSN:       getEnv("DB_DSN", "file:bookstore.db?_pragma=busy_timeout(5000)"),
		LogFile:     os.Getenv("LOG_FILE"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", 10*time.Minute),

		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPHeaders:    os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "bookstore"),
		ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
	}
	applog.Info(nil, "config.loaded", map[string]any{
		"port":          cfg.Port,
		"db_dsn":        cfg.DBDSN,
		"log_file":      cfg.LogFile,
		"cors_origins":  cfg.CORSOrigins,
		"otlp_endpoint": cfg.OTLPEndpoint,
	})
	return cfg
}

// Headers parses OTLPHeaders ("k=v,k2=v2") into a map.
func (c Config) Headers() map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(c.OTLPHeaders, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		applog.Info(nil, "config.invalid", map[string]any{"key": key, "value": v})
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		applog.Info(nil, "config.invalid", map[string]any{"key": key, "value": v})
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return def
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
