package chansorter

import (
	"context"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Option configures a Sorter with optional dependencies.
type Option func(*sorterOptions)

// sorterOptions holds optional Sorter configuration.
type sorterOptions struct {
	logger  types.Logger
	metrics types.MetricsCollector
	hooks   *types.Hooks
	lock    Lock
}

// Lock serializes sorting runs across instances sharing one position space.
//
// Acquire returns false, nil when another holder has the lock; the sorter
// turns that into ErrSortInProgress. The internal JetStream KV lease
// satisfies this interface.
type Lock interface {
	// Acquire attempts to take the lock without blocking.
	Acquire(ctx context.Context) (bool, error)

	// Release gives the lock back.
	Release(ctx context.Context) error
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	sorter, _ := chansorter.New(cfg, dir, reg, part, chansorter.WithLogger(logger))
func WithLogger(logger types.Logger) Option {
	return func(o *sorterOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *sorterOptions) {
		o.metrics = metrics
	}
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	hooks := &chansorter.Hooks{
//	    OnChannelMoved: func(ctx context.Context, ch chansorter.Channel, from int64) error {
//	        return notify(ch, from)
//	    },
//	}
//	sorter, _ := chansorter.New(cfg, dir, reg, part, chansorter.WithHooks(hooks))
func WithHooks(hooks *types.Hooks) Option {
	return func(o *sorterOptions) {
		o.hooks = hooks
	}
}

// WithLock sets a cross-instance lock guarding full sorting runs.
//
// Only full runs take the lock; single-channel repositions are serialized
// per-instance.
//
// Parameters:
//   - lock: Lock implementation, e.g. the JetStream KV lease
//
// Returns:
//   - Option: Functional option for New
func WithLock(lock Lock) Option {
	return func(o *sorterOptions) {
		o.lock = lock
	}
}
