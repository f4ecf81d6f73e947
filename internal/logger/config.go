package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig holds the logging configuration
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"both"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"20"`    // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"5"`  // Rotated files kept
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"14"`     // Days
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`  // Gzip rotated files

	// Log Paths
	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Filters, comma separated, "*" or empty allows everything
	FilterKinds      string `env:"LOG_FILTER_KINDS" envDefault:"*"`
	FilterComponents string `env:"LOG_FILTER_COMPONENTS" envDefault:"*"`
	FilterLevels     string `env:"LOG_FILTER_LEVELS" envDefault:"*"`
}

// DefaultConfig returns the configuration read from the environment.
// Development builds (GO_ENV unset or "development") log at debug level in text format.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{
			Level:            "info",
			Format:           "text",
			Output:           "both",
			MaxSize:          20,
			MaxBackups:       5,
			MaxAge:           14,
			Compress:         true,
			LogPath:          "./logs",
			AppFile:          "app.log",
			AuditFile:        "audit.log",
			ErrorFile:        "error.log",
			FilterKinds:      "*",
			FilterComponents: "*",
			FilterLevels:     "*",
		}
	}

	goEnv := os.Getenv("GO_ENV")
	if (goEnv == "" || goEnv == "development") && os.Getenv("LOG_LEVEL") == "" {
		cfg.Level = "debug"
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
