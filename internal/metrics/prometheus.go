package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/UberPyro/ChannelSorter2/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric names follow the chansorter_* prefix. Registration is idempotent per
// collector instance; pass prometheus.DefaultRegisterer for the common case.
type PrometheusCollector struct {
	registerOnce sync.Once
	registerErr  error

	sortDuration    prometheus.Histogram
	channelMoves    prometheus.Counter
	categoryRenames prometheus.Counter
	repositions     *prometheus.CounterVec
	eventsReceived  *prometheus.CounterVec
	eventsDropped   *prometheus.CounterVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector and registers its metrics.
//
// Parameters:
//   - reg: Target registerer (e.g. prometheus.DefaultRegisterer)
//
// Returns:
//   - *PrometheusCollector: Registered collector
//   - error: Registration failure (e.g. duplicate registration)
func NewPrometheus(reg prometheus.Registerer) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		sortDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chansorter_sort_duration_seconds",
			Help:    "Wall-clock duration of full sorting runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		channelMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chansorter_channel_moves_total",
			Help: "Channels relocated by sorting runs.",
		}),
		categoryRenames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chansorter_category_renames_total",
			Help: "Category labels changed by sorting runs.",
		}),
		repositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chansorter_repositions_total",
			Help: "Single-channel reposition attempts by result.",
		}, []string{"result"}),
		eventsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chansorter_events_received_total",
			Help: "Accepted platform events by kind.",
		}, []string{"kind"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chansorter_events_dropped_total",
			Help: "Discarded platform events by reason.",
		}, []string{"reason"}),
	}

	c.registerOnce.Do(func() {
		for _, col := range []prometheus.Collector{
			c.sortDuration, c.channelMoves, c.categoryRenames,
			c.repositions, c.eventsReceived, c.eventsDropped,
		} {
			if err := reg.Register(col); err != nil {
				c.registerErr = err

				return
			}
		}
	})
	if c.registerErr != nil {
		return nil, c.registerErr
	}

	return c, nil
}

// RecordSortDuration records the wall-clock time of a full sorting run.
func (c *PrometheusCollector) RecordSortDuration(seconds float64) {
	c.sortDuration.Observe(seconds)
}

// RecordChannelMoves records how many channels a run relocated.
func (c *PrometheusCollector) RecordChannelMoves(count int) {
	c.channelMoves.Add(float64(count))
}

// RecordCategoryRenames records how many category labels a run changed.
func (c *PrometheusCollector) RecordCategoryRenames(count int) {
	c.categoryRenames.Add(float64(count))
}

// RecordReposition records a single-channel reposition attempt.
func (c *PrometheusCollector) RecordReposition(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.repositions.WithLabelValues(result).Inc()
}

// RecordEventReceived counts an accepted platform event by kind.
func (c *PrometheusCollector) RecordEventReceived(kind string) {
	c.eventsReceived.WithLabelValues(kind).Inc()
}

// RecordEventDropped counts a discarded platform event by reason.
func (c *PrometheusCollector) RecordEventDropped(reason string) {
	c.eventsDropped.WithLabelValues(reason).Inc()
}
