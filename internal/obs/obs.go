// Package obs provides the structured-logging wrapper shared across the
// forecaster: a single charmbracelet/log logger, configurable level, used
// to surface ingestion and rating-engine warnings, configuration-absence
// fallbacks (spec.md §7), and Monte-Carlo progress.
package obs

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "2006-01-02 15:04:05",
})

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to the package logger; unknown names fall back to info.
func SetLevel(name string) {
	switch name {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// L returns the package logger.
func L() *log.Logger { return logger }

// Warnings logs each message at warn level, tagged with a component name —
// used for ingest row warnings and rating.Result.Warnings.
func Warnings(component string, messages []string) {
	for _, m := range messages {
		logger.With("component", component).Warn(m)
	}
}
