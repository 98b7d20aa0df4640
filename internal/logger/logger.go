package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// Init initializes the logger with default settings
func Init() {
	Initialize("info")
}

// Initialize sets up the global logger with Charm's log library
func Initialize(logLevel string) {
	Logger = log.New(os.Stderr)

	level := strings.ToLower(logLevel)
	switch level {
	case "debug":
		Logger.SetLevel(log.DebugLevel)
	case "info":
		Logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		Logger.SetLevel(log.WarnLevel)
	case "error":
		Logger.SetLevel(log.ErrorLevel)
	case "fatal":
		Logger.SetLevel(log.FatalLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}

	Logger.SetReportCaller(true)
	Logger.SetReportTimestamp(true)

	Logger.Debug("Logger initialized", "level", level)
}

// Get returns the global logger instance
func Get() *log.Logger {
	if Logger == nil {
		Initialize("info")
	}
	return Logger
}

// WithContext creates a new logger with additional context fields
func WithContext(fields ...any) *log.Logger {
	return Get().With(fields...)
}

// API creates a logger for server API calls
func API() *log.Logger {
	return WithContext("component", "api")
}

// Store creates a logger for the on-device store
func Store() *log.Logger {
	return WithContext("component", "store")
}

// Gate creates a logger for verification gates
func Gate(gateName string) *log.Logger {
	return WithContext("component", "gate", "gate", gateName)
}

// Voting creates a logger for the submission workflow
func Voting() *log.Logger {
	return WithContext("component", "voting")
}

// Handler creates a logger for stub server handlers
func Handler(handlerName string) *log.Logger {
	return WithContext("component", "handler", "handler", handlerName)
}

// Repository creates a logger for stub server repositories
func Repository(repoName string) *log.Logger {
	return WithContext("component", "repository", "repository", repoName)
}
