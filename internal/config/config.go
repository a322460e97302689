package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/battleship-tcp/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	DefaultPort        = 8080
	DefaultMaxSessions = 1
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Stage string `validate:"oneof=dev prod"`

	// Port is the TCP game port.
	Port int `validate:"min=1,max=65535"`

	// WsPort serves the WebSocket transport; 0 disables it.
	WsPort int `validate:"min=0,max=65535,nefield=Port"`

	// MaxSessions caps the number of games the server hosts before it
	// stops accepting; 0 means unlimited.
	MaxSessions int `validate:"min=0"`

	DatabaseURL  string `validate:"omitempty,url"`
	RedisAddr    string `validate:"omitempty,hostname_port"`
	OtelEndpoint string `validate:"omitempty,hostname_port"`
	LogLevel     string `validate:"oneof=debug info warn error"`
}

// Load reads the environment, loading .env first outside of production.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:        envOr("STAGE", StageDev),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		OtelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:     strings.ToLower(envOr("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.Port, err = intEnvOr("PORT", DefaultPort); err != nil {
		return Config{}, err
	}
	if cfg.WsPort, err = intEnvOr("WS_PORT", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxSessions, err = intEnvOr("MAX_SESSIONS", DefaultMaxSessions); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnvOr(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, cerr.ErrInvalidConfig(key, err)
	}
	return n, nil
}
