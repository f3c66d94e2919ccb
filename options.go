package tnsdedup

import (
	"context"
	"io"

	"github.com/davidvella/tnsdedup/dedup"
	"github.com/davidvella/tnsdedup/internal/logging"
	"github.com/davidvella/tnsdedup/storage/local"
	"github.com/sirupsen/logrus"
)

// Storage opens inputs and creates outputs.
type Storage interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}

// Observer receives the statistics of every completed pass.
type Observer interface {
	Observe(stats dedup.Stats)
}

// options defines all configuration options for a run.
type options struct {
	lenient  bool               // Treat a bad line as the end of input
	storage  Storage            // Where files are opened and created
	logger   logrus.FieldLogger // Diagnostics sink
	observer Observer           // Optional stats sink
}

// Option is a function that configures a run.
type Option func(*options)

// WithLenient makes malformed or truncated lines end the input silently
// instead of failing the run.
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.lenient = lenient
	}
}

// WithStorage sets the storage files are opened from.
func WithStorage(s Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver sets a sink for the final statistics.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		lenient: false,
		storage: local.NewLocalStorage(),
		logger:  logging.Discard(),
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
