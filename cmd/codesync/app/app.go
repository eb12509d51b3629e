// Package app provides the application context and dependency management
// for the codesync CLI: configuration, logging and command wiring.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/codesync/cmd/application"
	"github.com/agentstation/codesync/pkg/errors"
)

// App represents the codesync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// fixedLogger keeps a logger set through WithLogger across flag parsing.
	fixedLogger bool
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the report format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Inputs returns the configured file locations.
func (a *App) Inputs() application.Inputs {
	return application.Inputs{
		Thesaurus: a.config.Thesaurus,
		NewCodes:  a.config.NewCodes,
		Existing:  a.config.Existing,
		Out:       a.config.Out,
	}
}

// SuppressInfo reports whether info diagnostics are dropped.
func (a *App) SuppressInfo() bool {
	return a.config.SuppressInfo
}

// MetricsFile returns the Prometheus textfile path.
func (a *App) MetricsFile() string {
	return a.config.MetricsFile
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = logger != nil
		return nil
	}
}
