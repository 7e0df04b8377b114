// Package logger builds the zerolog logger handed to pipeline components.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config selects the log level and an optional log file beside stdout.
type Config struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// New builds a logger writing JSON lines to stdout and, when configured, a
// log file. The file handle lives for the process; callers pass the logger
// down instead of reaching for a global.
func New(cfg Config) zerolog.Logger {
	writers := []io.Writer{os.Stdout}

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err != nil {
			// the logger does not exist yet, stderr is all we have
			os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
		} else {
			writers = append(writers, file)
		}
	}

	multi := zerolog.MultiLevelWriter(writers...)
	return zerolog.New(multi).With().Timestamp().Logger().Level(ParseLevel(cfg.Level))
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
