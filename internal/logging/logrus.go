// Package logging adapts logrus to harvest.Logger.
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// Format selects the logrus formatter.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger implements harvest.Logger on top of a logrus logger.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger writing to out. verbose enables debug output.
func New(out io.Writer, format Format, verbose bool) *Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return Wrap(logger)
}

// Wrap adapts an existing logrus logger.
func Wrap(logger *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(logger)}
}

// With returns a logger that adds fields to every entry.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// Debug implements harvest.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info implements harvest.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn implements harvest.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error implements harvest.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

var _ harvest.Logger = (*Logger)(nil)
