package events_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/events"
	chansortertest "github.com/UberPyro/ChannelSorter2/testing"
	"github.com/UberPyro/ChannelSorter2/types"
)

// recordingHandler collects events and optionally fails the first N calls.
type recordingHandler struct {
	mu       sync.Mutex
	events   []events.Event
	failures int
	calls    int
	notify   chan struct{}
}

func newRecordingHandler(failures int) *recordingHandler {
	return &recordingHandler{
		failures: failures,
		notify:   make(chan struct{}, 64),
	}
}

func (h *recordingHandler) HandleChannelEvent(_ context.Context, ev events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls++
	if h.calls <= h.failures {
		h.notify <- struct{}{}

		return types.ErrDirectoryUnavailable
	}
	h.events = append(h.events, ev)
	h.notify <- struct{}{}

	return nil
}

func (h *recordingHandler) snapshot() ([]events.Event, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]events.Event(nil), h.events...), h.calls
}

func (h *recordingHandler) waitCalls(t *testing.T, n int) {
	t.Helper()

	for range n {
		select {
		case <-h.notify:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler invocations")
		}
	}
}

func testConfig() events.Config {
	return events.Config{
		RenamedSubject:  "test.events.renamed",
		RestoredSubject: "test.events.restored",
		MaxRetries:      2,
		RetryBaseDelay:  5 * time.Millisecond,
		RetryMaxDelay:   20 * time.Millisecond,
		RetrySeed:       42,
	}
}

func publishEvent(t *testing.T, nc *nats.Conn, subject string, ev events.Event) {
	t.Helper()

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, nc.Publish(subject, data))
	require.NoError(t, nc.Flush())
}

func TestNewListenerValidation(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	t.Run("nil connection", func(t *testing.T) {
		_, err := events.NewListener(nil, testConfig(), newRecordingHandler(0))
		require.ErrorIs(t, err, types.ErrInvalidConfig)
	})

	t.Run("nil handler", func(t *testing.T) {
		_, err := events.NewListener(nc, testConfig(), nil)
		require.ErrorIs(t, err, types.ErrInvalidConfig)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.RestoredSubject = cfg.RenamedSubject
		_, err := events.NewListener(nc, cfg, newRecordingHandler(0))
		require.ErrorIs(t, err, types.ErrInvalidConfig)
	})
}

func TestListenerDeliversEvents(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := newRecordingHandler(0)
	listener, err := events.NewListener(nc, testConfig(), handler,
		events.WithLogger(chansortertest.NewTestLogger(t)),
	)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind:      events.KindRenamed,
		ChannelID: 100,
		Name:      "banana",
		OldName:   "apple",
	})
	publishEvent(t, nc, "test.events.restored", events.Event{
		Kind:      events.KindRestored,
		ChannelID: 200,
		Name:      "cherry",
	})

	handler.waitCalls(t, 2)

	// The two subjects deliver independently, so only per-kind content is
	// guaranteed, not cross-subject order.
	got, _ := handler.snapshot()
	require.Len(t, got, 2)
	byKind := make(map[events.Kind]events.Event, len(got))
	for _, ev := range got {
		byKind[ev.Kind] = ev
	}
	renamed, ok := byKind[events.KindRenamed]
	require.True(t, ok)
	require.Equal(t, int64(100), renamed.ChannelID)
	require.Equal(t, "apple", renamed.OldName)
	restored, ok := byKind[events.KindRestored]
	require.True(t, ok)
	require.Equal(t, int64(200), restored.ChannelID)
}

// slowHandler flags any overlapping invocation while holding each call open
// long enough for a second delivery to arrive.
type slowHandler struct {
	inFlight   atomic.Int32
	overlapped atomic.Bool
	notify     chan struct{}
}

func (h *slowHandler) HandleChannelEvent(context.Context, events.Event) error {
	if h.inFlight.Add(1) > 1 {
		h.overlapped.Store(true)
	}
	time.Sleep(50 * time.Millisecond)
	h.inFlight.Add(-1)
	h.notify <- struct{}{}

	return nil
}

func TestListenerSerializesHandlerInvocations(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := &slowHandler{notify: make(chan struct{}, 4)}
	listener, err := events.NewListener(nc, testConfig(), handler)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	// One event per subject lands on two different delivery goroutines.
	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind: events.KindRenamed, ChannelID: 100, Name: "banana",
	})
	publishEvent(t, nc, "test.events.restored", events.Event{
		Kind: events.KindRestored, ChannelID: 200, Name: "cherry",
	})

	for range 2 {
		select {
		case <-handler.notify:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler invocations")
		}
	}

	require.False(t, handler.overlapped.Load(), "handler invocations overlapped")
}

func TestListenerSuppressesDuplicates(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := newRecordingHandler(0)
	listener, err := events.NewListener(nc, testConfig(), handler)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	ev := events.Event{Kind: events.KindRenamed, ChannelID: 100, Name: "banana"}
	publishEvent(t, nc, "test.events.renamed", ev)
	publishEvent(t, nc, "test.events.renamed", ev)
	// A different payload must still get through.
	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind: events.KindRenamed, ChannelID: 100, Name: "coconut",
	})

	handler.waitCalls(t, 2)

	got, calls := handler.snapshot()
	require.Equal(t, 2, calls)
	require.Len(t, got, 2)
	require.Equal(t, "banana", got[0].Name)
	require.Equal(t, "coconut", got[1].Name)
}

func TestListenerDropsUndecodablePayload(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := newRecordingHandler(0)
	listener, err := events.NewListener(nc, testConfig(), handler)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	require.NoError(t, nc.Publish("test.events.renamed", []byte("{not json")))
	require.NoError(t, nc.Flush())
	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind: events.KindRenamed, ChannelID: 300, Name: "durian",
	})

	handler.waitCalls(t, 1)

	got, calls := handler.snapshot()
	require.Equal(t, 1, calls)
	require.Len(t, got, 1)
	require.Equal(t, int64(300), got[0].ChannelID)
}

func TestListenerRetriesHandlerFailures(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := newRecordingHandler(2)
	listener, err := events.NewListener(nc, testConfig(), handler,
		events.WithLogger(chansortertest.NewTestLogger(t)),
	)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind: events.KindRenamed, ChannelID: 400, Name: "elderberry",
	})

	handler.waitCalls(t, 3)

	got, calls := handler.snapshot()
	require.Equal(t, 3, calls)
	require.Len(t, got, 1)
	require.Equal(t, int64(400), got[0].ChannelID)
}

func TestListenerStartIsIdempotent(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	handler := newRecordingHandler(0)
	listener, err := events.NewListener(nc, testConfig(), handler)
	require.NoError(t, err)
	require.NoError(t, listener.Start(context.Background()))
	require.NoError(t, listener.Start(context.Background()))
	defer listener.Stop()

	publishEvent(t, nc, "test.events.renamed", events.Event{
		Kind: events.KindRenamed, ChannelID: 500, Name: "fig",
	})

	handler.waitCalls(t, 1)

	_, calls := handler.snapshot()
	require.Equal(t, 1, calls)
}
