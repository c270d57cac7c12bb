// Package reconcile computes order-preserving channel moves over a shared
// position space.
//
// All channels across every project category share one dense, zero-based
// ordinal space: moving a channel in one category shifts the positions of
// channels in other categories too. A Space models that ordinal space as a
// pure value; Reposition computes the minimal set of position adjustments
// that opens (or closes) exactly one slot for the moved channel, leaving the
// relative order of every other pair of channels untouched.
//
// Both the computation and its application to the local model are pure and
// synchronous. Committing a Plan to the remote directory service, and
// serializing concurrent reconciliations against the same ordinal space, are
// the caller's responsibility.
package reconcile
