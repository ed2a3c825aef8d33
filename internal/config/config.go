// Package config reads process settings from the environment.
package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by key, or
// fallback when it is unset. A variable set to "" counts as set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger returns a timestamped logger writing to w at the level named
// by LOG_LEVEL. Unknown levels fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
