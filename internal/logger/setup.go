package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string // "pretty" or "json"
	WithCaller bool
	Output     io.Writer
}

// DefaultConfig returns sensible defaults for logging
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Format: "pretty",
		Output: os.Stderr,
	}
}

// Init creates and configures a new zerolog logger
func Init(config *Config) zerolog.Logger {
	if config == nil {
		config = DefaultConfig()
	}

	zerolog.SetGlobalLevel(parseLevel(config.Level))

	var output io.Writer = config.Output
	if config.Format == "pretty" {
		output = &zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: "15:04:05",
		}
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("app", "edgefn").
		Logger()
	if config.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// SetupFromFlags configures the logger based on command flags
func SetupFromFlags(verbose, debug bool) zerolog.Logger {
	config := DefaultConfig()
	if debug {
		config.Level = "debug"
		config.WithCaller = true
	} else if verbose {
		config.Level = "info"
	}
	return Init(config)
}

// ForComponent creates a logger with component context
func ForComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
