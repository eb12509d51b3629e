package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/codesync/pkg/errors"
)

type options struct {
	lookup       Lookup
	suppressInfo bool
	logger       *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		suppressInfo: true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.lookup == nil {
		return nil, &errors.ValidationError{
			Field:   "lookup",
			Message: "is required",
		}
	}
	return o, nil
}

// WithLookup sets the authoritative lookup consulted for unknown codes.
func WithLookup(lookup Lookup) Option {
	return func(o *options) error {
		if lookup == nil {
			return &errors.ValidationError{
				Field:   "lookup",
				Message: "cannot be nil",
			}
		}
		o.lookup = lookup
		return nil
	}
}

// WithSuppressInfo drops info diagnostics from the result. Enabled by
// default.
func WithSuppressInfo(suppress bool) Option {
	return func(o *options) error {
		o.suppressInfo = suppress
		return nil
	}
}

// WithLogger sets the logger for debug output. Defaults to the context
// logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
