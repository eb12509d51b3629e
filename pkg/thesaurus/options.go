package thesaurus

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/agentstation/codesync/pkg/errors"
)

type options struct {
	workers int
	logger  *zerolog.Logger
	source  string
}

func defaultOptions() *options {
	return &options{
		workers: runtime.GOMAXPROCS(0),
	}
}

// Option configures a lookup build.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithWorkers bounds the number of goroutines converting rows.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return &errors.ValidationError{
				Field:   "workers",
				Value:   n,
				Message: "must be at least 1",
			}
		}
		o.workers = n
		return nil
	}
}

// WithLogger sets the logger used for build statistics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithSource names the input in parse errors and log lines.
func WithSource(name string) Option {
	return func(o *options) error {
		o.source = name
		return nil
	}
}
