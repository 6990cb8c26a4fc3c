package plist

import (
	"github.com/sirupsen/logrus"

	"github.com/aweris/plist/internal/arena"
)

// Options configures the arena created by New or From.
type Options struct {
	Capacity  int
	MaxNodes  int
	Logger    logrus.FieldLogger
	OnReclaim func(freed int)
}

// Option is a functional option for configuring New and From.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{}
}

// WithCapacity preallocates room for n nodes.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Capacity = n
		}
	}
}

// WithMaxNodes caps the number of live nodes in the arena. Prepend panics and
// TryPrepend returns ErrExhausted once the cap is reached.
// It panics if n is negative.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("plist: max nodes must be non-negative")
		}
		o.MaxNodes = n
	}
}

// WithLogger sets the logger used for teardown debug output.
// A nil logger, typed or not, keeps the default that discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnReclaim registers a hook invoked after each release that freed nodes.
// The hook receives the number of freed nodes and runs on the releasing goroutine.
func WithOnReclaim(fn func(freed int)) Option {
	return func(o *Options) { o.OnReclaim = fn }
}

func newArena[T any](opts []Option) *arena.Arena[T] {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	cfg := arena.Config{
		Capacity:  options.Capacity,
		MaxNodes:  options.MaxNodes,
		OnReclaim: options.OnReclaim,
	}
	if !isNilLogger(options.Logger) {
		cfg.Logger = options.Logger.WithField("component", "plist")
	}
	return arena.New[T](cfg)
}

func isNilLogger(l logrus.FieldLogger) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *logrus.Logger:
		return v == nil
	case *logrus.Entry:
		return v == nil
	}
	return false
}
