// Package application provides the application interface for codesync
// commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with a Mock:
//
//	mock := &application.Mock{
//	    InputsValue: application.Inputs{Thesaurus: "testdata/Thesaurus.txt"},
//	}
//	cmd := merge.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"
)

// Inputs names the files a run reads and writes.
type Inputs struct {
	Thesaurus string
	NewCodes  string
	Existing  string
	Out       string
}

// Application provides the application interface that commands need.
// The App struct from cmd/codesync/app implements it.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (table, json, yaml,
	// text). Empty means detect from the terminal.
	OutputFormat() string

	// Inputs returns the configured file locations.
	Inputs() Inputs

	// SuppressInfo reports whether info diagnostics are dropped.
	SuppressInfo() bool

	// MetricsFile returns the Prometheus textfile path, or "" to skip
	// metrics export.
	MetricsFile() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
