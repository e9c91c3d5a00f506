// package shared defines configuration, errors and logging used across the refresh pipeline
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const loggerPrefix = "refresh"

// NewLogger creates a [log.Logger] at [log.WarnLevel] with timestamps and caller reporting.
//
// The writer defaults to [os.Stderr] so log entries never mix with the line protocol on stdout.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           log.WarnLevel,
		Prefix:          loggerPrefix,
	})
}

// NewRunLogger creates the logger for one invocation: the level comes from config and every entry
// carries a fresh run id.
func NewRunLogger(w io.Writer, config *Config) *log.Logger {
	if config == nil {
		config = DefaultConfig()
	}

	logger := NewLogger(w)
	logger.SetLevel(config.LogLevel())
	return logger.With("run", GenerateID())
}

// ProviderLogger creates a child logger tagging every entry with the provider name.
func ProviderLogger(l *log.Logger, provider string) *log.Logger {
	return l.With("provider", provider)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}
