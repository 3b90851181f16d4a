// internal/infra/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
// When cfg.LogFile is set, entries are appended to that file as well as written to stdout.
// The returned closer releases the file and must be called on shutdown.
func Init(cfg *config.AppConfig) (io.Closer, error) {
	var closer io.Closer = io.NopCloser(nil)
	Log.SetOutput(os.Stdout) // Default output

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		}
		Log.SetOutput(io.MultiWriter(os.Stdout, f))
		closer = f
	}

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		Log.SetLevel(logrus.InfoLevel)
	} else {
		Log.SetLevel(level)
	}

	// Set Log Formatter
	if strings.ToLower(cfg.Environment) == "production" || strings.ToLower(cfg.Environment) == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     cfg.LogFile == "", // No escape codes in the log file
		})
	}

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
	return closer, nil
}

// DefaultLogFile is used before configuration is loaded and LOG_FILE is unset.
const DefaultLogFile = "main.log"

// InitBootstrap points the global logger at stdout and the log file named by LOG_FILE
// (or DefaultLogFile). It is meant for errors raised before a valid configuration exists.
// When the file cannot be opened, entries go to stdout only.
func InitBootstrap() io.Closer {
	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = DefaultLogFile
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		Log.SetOutput(os.Stdout)
		Log.WithError(err).Warnf("Could not open log file %s", path)
		return io.NopCloser(nil)
	}
	Log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
