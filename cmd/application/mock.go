package application

import (
	"github.com/rs/zerolog"
)

// Mock is a configurable Application for command tests.
type Mock struct {
	LoggerValue       *zerolog.Logger
	OutputFormatValue string
	InputsValue       Inputs
	SuppressInfoValue bool
	MetricsFileValue  string
	VersionValue      string
}

var _ Application = (*Mock)(nil)

// Logger returns LoggerValue, or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerValue == nil {
		logger := zerolog.Nop()
		return &logger
	}
	return m.LoggerValue
}

// OutputFormat returns OutputFormatValue.
func (m *Mock) OutputFormat() string { return m.OutputFormatValue }

// Inputs returns InputsValue.
func (m *Mock) Inputs() Inputs { return m.InputsValue }

// SuppressInfo returns SuppressInfoValue.
func (m *Mock) SuppressInfo() bool { return m.SuppressInfoValue }

// MetricsFile returns MetricsFileValue.
func (m *Mock) MetricsFile() string { return m.MetricsFileValue }

// Version returns VersionValue, or "dev".
func (m *Mock) Version() string {
	if m.VersionValue == "" {
		return "dev"
	}
	return m.VersionValue
}

// Commit returns a fixed test value.
func (m *Mock) Commit() string { return "test" }

// Date returns a fixed test value.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns a fixed test value.
func (m *Mock) BuiltBy() string { return "test" }
