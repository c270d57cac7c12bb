// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/UberPyro/ChannelSorter2/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordSortDuration discards the sort duration metric.
func (*NopMetrics) RecordSortDuration(_ /* seconds */ float64) {}

// RecordChannelMoves discards the channel move counter.
func (*NopMetrics) RecordChannelMoves(_ /* count */ int) {}

// RecordCategoryRenames discards the category rename counter.
func (*NopMetrics) RecordCategoryRenames(_ /* count */ int) {}

// RecordReposition discards the reposition attempt metric.
func (*NopMetrics) RecordReposition(_ /* success */ bool) {}

// RecordEventReceived discards the event counter.
func (*NopMetrics) RecordEventReceived(_ /* kind */ string) {}

// RecordEventDropped discards the dropped-event counter.
func (*NopMetrics) RecordEventDropped(_ /* reason */ string) {}
