package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	// Must not panic; there is nothing else to observe.
	m := NewNop()
	m.RecordSortDuration(1.5)
	m.RecordChannelMoves(3)
	m.RecordCategoryRenames(1)
	m.RecordReposition(true)
	m.RecordEventReceived("renamed")
	m.RecordEventDropped("duplicate")
}

func TestPrometheusCollector(t *testing.T) {
	t.Run("registers and counts", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c, err := NewPrometheus(reg)
		require.NoError(t, err)

		c.RecordChannelMoves(3)
		c.RecordChannelMoves(2)
		c.RecordCategoryRenames(1)
		c.RecordReposition(true)
		c.RecordReposition(false)
		c.RecordEventReceived("renamed")
		c.RecordEventDropped("decode")
		c.RecordSortDuration(0.2)

		require.Equal(t, 5.0, testutil.ToFloat64(c.channelMoves))
		require.Equal(t, 1.0, testutil.ToFloat64(c.categoryRenames))
		require.Equal(t, 1.0, testutil.ToFloat64(c.repositions.WithLabelValues("success")))
		require.Equal(t, 1.0, testutil.ToFloat64(c.repositions.WithLabelValues("failure")))
		require.Equal(t, 1.0, testutil.ToFloat64(c.eventsReceived.WithLabelValues("renamed")))
		require.Equal(t, 1.0, testutil.ToFloat64(c.eventsDropped.WithLabelValues("decode")))
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewPrometheus(reg)
		require.NoError(t, err)

		_, err = NewPrometheus(reg)
		require.Error(t, err)
	})
}
