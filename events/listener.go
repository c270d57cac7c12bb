package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/UberPyro/ChannelSorter2/internal/logging"
	"github.com/UberPyro/ChannelSorter2/internal/metrics"
	"github.com/UberPyro/ChannelSorter2/types"
)

// Kind labels the platform event type.
type Kind string

const (
	// KindRenamed is published after a channel's display name changed.
	KindRenamed Kind = "renamed"

	// KindRestored is published when an archived channel should return to
	// its sorted slot.
	KindRestored Kind = "restored"
)

// Event is one channel event as delivered by the platform gateway.
type Event struct {
	Kind      Kind   `json:"kind"`
	ChannelID int64  `json:"channelId"`
	Name      string `json:"name"`
	OldName   string `json:"oldName,omitempty"`
}

// Handler consumes channel events.
//
// Handlers are invoked serially, one event at a time; returning an error
// triggers a retry with backoff up to the configured limit.
type Handler interface {
	HandleChannelEvent(ctx context.Context, ev Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev Event) error

// HandleChannelEvent calls the wrapped function.
func (f HandlerFunc) HandleChannelEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Listener subscribes to channel-event subjects and drives a Handler.
//
// Duplicate deliveries (gateway reconnects, at-least-once relays) are
// suppressed by hashing the raw payload and remembering hashes for the
// configured dedupe window.
type Listener struct {
	conn    *nats.Conn
	cfg     Config
	handler Handler
	logger  types.Logger
	metrics types.MetricsCollector

	seen *xsync.Map[uint64, time.Time]

	// dispatchMu serializes handler invocations across the per-subject
	// delivery goroutines.
	dispatchMu sync.Mutex

	mu      sync.Mutex
	subs    []*nats.Subscription
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// ListenerOption configures optional Listener dependencies.
type ListenerOption func(*Listener)

// WithLogger sets the listener's logger.
func WithLogger(logger types.Logger) ListenerOption {
	return func(l *Listener) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics sets the listener's metrics collector.
func WithMetrics(collector types.MetricsCollector) ListenerOption {
	return func(l *Listener) {
		if collector != nil {
			l.metrics = collector
		}
	}
}

// NewListener creates a Listener.
//
// Parameters:
//   - conn: NATS connection to subscribe on
//   - cfg: Listener configuration (defaults applied, then validated)
//   - handler: Event consumer; typically the sorter's reposition entry point
//   - opts: Optional logger and metrics
//
// Returns:
//   - *Listener: Listener ready for Start
//   - error: Configuration or argument error
func NewListener(conn *nats.Conn, cfg Config, handler Handler, opts ...ListenerOption) (*Listener, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: nil connection", types.ErrInvalidConfig)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: nil handler", types.ErrInvalidConfig)
	}
	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Listener{
		conn:    conn,
		cfg:     cfg,
		handler: handler,
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
		seen:    xsync.NewMap[uint64, time.Time](),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Start subscribes to the configured subjects.
//
// The subscriptions dispatch into a single handler path, so events are
// processed strictly one at a time.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return nil
	}
	l.ctx, l.cancel = context.WithCancel(ctx)

	for _, subject := range []string{l.cfg.RenamedSubject, l.cfg.RestoredSubject} {
		sub, err := l.conn.QueueSubscribe(subject, l.cfg.QueueGroup, l.dispatch)
		if err != nil {
			l.stopLocked()

			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		l.subs = append(l.subs, sub)
	}
	l.started = true
	l.logger.Info("event listener started",
		"renamed", l.cfg.RenamedSubject,
		"restored", l.cfg.RestoredSubject,
	)

	return nil
}

// Stop drains the subscriptions and cancels in-flight retries.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Listener) stopLocked() {
	for _, sub := range l.subs {
		_ = sub.Drain()
	}
	l.subs = nil
	if l.cancel != nil {
		l.cancel()
	}
	l.started = false
}

// dispatch runs on a NATS delivery goroutine. Each subscription owns its own
// goroutine, so dispatchMu holds the handler to one event at a time;
// reconciliations over one position space must not overlap.
func (l *Listener) dispatch(msg *nats.Msg) {
	l.dispatchMu.Lock()
	defer l.dispatchMu.Unlock()

	digest := xxh3.Hash(msg.Data)
	if l.isDuplicate(digest) {
		l.metrics.RecordEventDropped("duplicate")
		l.logger.Debug("duplicate event suppressed", "subject", msg.Subject)

		return
	}

	var ev Event
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		l.metrics.RecordEventDropped("decode")
		l.logger.Warn("undecodable event dropped", "subject", msg.Subject, "error", err)

		return
	}
	l.metrics.RecordEventReceived(string(ev.Kind))

	if err := l.handleWithRetry(ev); err != nil {
		l.metrics.RecordEventDropped("handler")
		l.logger.Error("event abandoned after retries",
			"kind", ev.Kind,
			"channel", ev.ChannelID,
			"error", err,
		)
	}
}

// handleWithRetry invokes the handler, retrying transient failures with
// jittered backoff.
func (l *Listener) handleWithRetry(ev Event) error {
	rng := newRetryRNG(l.cfg.RetrySeed)

	var delay time.Duration
	var err error
	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay = retryDelay(delay, l.cfg.RetryBaseDelay, l.cfg.RetryMultiplier, l.cfg.RetryMaxDelay, rng)
			select {
			case <-l.ctx.Done():
				return l.ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = l.handler.HandleChannelEvent(l.ctx, ev); err == nil {
			return nil
		}
		l.logger.Warn("event handler failed",
			"kind", ev.Kind,
			"channel", ev.ChannelID,
			"attempt", attempt+1,
			"error", err,
		)
	}

	return err
}

// isDuplicate records the digest and reports whether it was already seen
// within the dedupe window. Stale entries are purged opportunistically.
func (l *Listener) isDuplicate(digest uint64) bool {
	now := time.Now()
	cutoff := now.Add(-l.cfg.DedupeWindow)

	if at, ok := l.seen.Load(digest); ok && at.After(cutoff) {
		return true
	}
	l.seen.Store(digest, now)

	l.seen.Range(func(key uint64, at time.Time) bool {
		if at.Before(cutoff) {
			l.seen.Delete(key)
		}

		return true
	})

	return false
}
