package events

import (
	rand "math/rand/v2"
	"time"
)

// retryDelay computes the next retry delay using capped jittered growth.
//
// Given the previous delay, the next one is drawn uniformly from
// [base, base + prev*multiplier - base), then clamped to the cap.
//
// Behavior:
//   - prev <= 0 starts from base
//   - multiplier < 1.0 falls back to 1.0 (no growth)
//   - cap <= base returns the cap
func retryDelay(prev, base time.Duration, multiplier float64, capDur time.Duration, rng *rand.Rand) time.Duration {
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}

	if prev <= 0 {
		return base
	}

	spread := time.Duration(float64(prev)*multiplier) - base
	if spread <= 0 {
		spread = base
	}

	var jitter int64
	if rng != nil {
		jitter = rng.Int64N(int64(spread))
	} else {
		jitter = rand.Int64N(int64(spread)) //nolint:gosec // non-crypto backoff jitter
	}
	next := base + time.Duration(jitter)
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}

// newRetryRNG returns a deterministic RNG only when a non-zero seed is
// provided. When seed == 0 it returns nil so callers use the package-level
// PRNG instead, keeping production jitter inexpensive.
//
//nolint:gosec
func newRetryRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	s1 := uint64(seed)
	s2 := s1 ^ 0x9e3779b97f4a7c15

	return rand.New(rand.NewPCG(s1, s2))
}
