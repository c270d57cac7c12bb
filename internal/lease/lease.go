// Package lease provides a NATS KV-backed mutual-exclusion lease.
//
// Sorting runs against one shared position space must never overlap, even
// when several bot instances run for redundancy. The lease uses atomic KV
// operations to serialize them:
//
//   - Create (atomic): Acquire the lease if the key doesn't exist
//   - Delete (with revision): Release only the lease we still hold
//
// The key expires with the bucket TTL, so a crashed holder frees the lease
// automatically.
package lease

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// ErrNotHeld is returned when releasing a lease this instance does not hold.
var ErrNotHeld = errors.New("lease not held")

// Lease is a single-key mutual-exclusion lease over a JetStream KV bucket.
//
// All fields are protected by mu for thread-safe concurrent access.
type Lease struct {
	kv    jetstream.KeyValue
	key   string
	owner string

	mu       sync.Mutex
	revision uint64
	held     bool
}

// New creates a lease over an existing KV bucket.
//
// The bucket should carry a short TTL (e.g. 30-60s) so a crashed holder
// cannot block sorting forever.
//
// Parameters:
//   - kv: JetStream KV bucket used for coordination
//   - key: Key name for the lease claim (e.g. "sort")
//   - owner: Identifier recorded in the claim, for diagnostics
//
// Returns:
//   - *Lease: New lease instance
func New(kv jetstream.KeyValue, key, owner string) *Lease {
	return &Lease{kv: kv, key: key, owner: owner}
}

// Acquire attempts to take the lease.
//
// Returns:
//   - bool: true when the lease was acquired, false when another holder has it
//   - error: KV failure or context cancellation
func (l *Lease) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held {
		return true, nil
	}

	value := fmt.Sprintf("%s:%d", l.owner, time.Now().Unix())
	revision, err := l.kv.Create(ctx, l.key, []byte(value))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return false, nil
		}

		return false, fmt.Errorf("create lease key: %w", err)
	}

	l.revision = revision
	l.held = true

	return true, nil
}

// Release gives the lease back.
//
// The delete is revision-checked so a lease that expired and was re-acquired
// by somebody else is never stolen back from them.
//
// Returns:
//   - error: ErrNotHeld when this instance does not hold the lease
func (l *Lease) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.held {
		return ErrNotHeld
	}

	err := l.kv.Delete(ctx, l.key, jetstream.LastRevision(l.revision))
	l.held = false
	l.revision = 0
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete lease key: %w", err)
	}

	return nil
}

// Held reports whether this instance believes it holds the lease. The truth
// lives in the KV store; this is the local view only.
func (l *Lease) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.held
}

// EnsureBucket creates or opens the lease KV bucket.
//
// Handles the race where several instances create the bucket concurrently.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - bucket: Bucket name
//   - ttl: Key TTL bounding how long a crashed holder blocks others
//
// Returns:
//   - jetstream.KeyValue: The bucket instance
//   - error: Creation/open failure
func EnsureBucket(ctx context.Context, js jetstream.JetStream, bucket string, ttl time.Duration) (jetstream.KeyValue, error) {
	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
		TTL:    ttl,
	})
	if err == nil {
		return kv, nil
	}
	if errors.Is(err, jetstream.ErrBucketExists) {
		kv, err = js.KeyValue(ctx, bucket)
		if err == nil {
			return kv, nil
		}
	}

	return nil, fmt.Errorf("ensure lease bucket %s: %w", bucket, err)
}
