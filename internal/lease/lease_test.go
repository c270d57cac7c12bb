package lease_test

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	"github.com/UberPyro/ChannelSorter2/internal/lease"
	chansortertest "github.com/UberPyro/ChannelSorter2/testing"
)

func TestLeaseAcquireRelease(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)
	kv := chansortertest.CreateJetStreamKV(t, nc, "lease-basic")

	l := lease.New(kv, "sort", "instance-1")
	require.False(t, l.Held())

	acquired, err := l.Acquire(t.Context())
	require.NoError(t, err)
	require.True(t, acquired)
	require.True(t, l.Held())

	// Re-acquiring while held is a no-op.
	acquired, err = l.Acquire(t.Context())
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, l.Release(t.Context()))
	require.False(t, l.Held())
}

func TestLeaseMutualExclusion(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)
	kv := chansortertest.CreateJetStreamKV(t, nc, "lease-contend")

	first := lease.New(kv, "sort", "instance-1")
	second := lease.New(kv, "sort", "instance-2")

	acquired, err := first.Acquire(t.Context())
	require.NoError(t, err)
	require.True(t, acquired)

	acquired, err = second.Acquire(t.Context())
	require.NoError(t, err)
	require.False(t, acquired)
	require.False(t, second.Held())

	require.NoError(t, first.Release(t.Context()))

	acquired, err = second.Acquire(t.Context())
	require.NoError(t, err)
	require.True(t, acquired)
	require.NoError(t, second.Release(t.Context()))
}

func TestLeaseReleaseWithoutHolding(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)
	kv := chansortertest.CreateJetStreamKV(t, nc, "lease-nothold")

	l := lease.New(kv, "sort", "instance-1")
	require.ErrorIs(t, l.Release(t.Context()), lease.ErrNotHeld)
}

func TestLeaseReleaseAfterExpiry(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)
	kv := chansortertest.CreateJetStreamKV(t, nc, "lease-expired")

	l := lease.New(kv, "sort", "instance-1")
	acquired, err := l.Acquire(t.Context())
	require.NoError(t, err)
	require.True(t, acquired)

	// Simulate TTL expiry followed by another holder taking the key. The
	// revision-checked delete must not steal the new holder's claim.
	require.NoError(t, kv.Delete(t.Context(), "sort"))
	require.NoError(t, kv.Purge(t.Context(), "sort"))
	_, err = kv.Create(t.Context(), "sort", []byte("instance-2:0"))
	require.NoError(t, err)

	// The stale revision no longer matches, so the delete is refused. Local
	// state is cleared regardless.
	require.Error(t, l.Release(t.Context()))
	require.False(t, l.Held())

	entry, err := kv.Get(t.Context(), "sort")
	require.NoError(t, err)
	require.Equal(t, []byte("instance-2:0"), entry.Value())
}

func TestEnsureBucket(t *testing.T) {
	_, nc := chansortertest.StartEmbeddedNATS(t)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	kv, err := lease.EnsureBucket(t.Context(), js, "sorter-leases", 30*time.Second)
	require.NoError(t, err)
	require.NotNil(t, kv)

	// Second call opens the existing bucket instead of failing.
	again, err := lease.EnsureBucket(t.Context(), js, "sorter-leases", 30*time.Second)
	require.NoError(t, err)
	require.NotNil(t, again)
}
