package types

import "errors"

// Sentinel errors for the ChannelSorter module.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Sorter errors - Public API errors returned by the Sorter component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDirectoryRequired is returned when the directory service is nil.
	ErrDirectoryRequired = errors.New("directory service is required")

	// ErrRegistryRequired is returned when the category registry is nil.
	ErrRegistryRequired = errors.New("category registry is required")

	// ErrPartitionerRequired is returned when the partitioner is nil.
	ErrPartitionerRequired = errors.New("partitioner is required")

	// ErrNoCategories is returned when the registry names no project categories.
	ErrNoCategories = errors.New("no project categories configured")

	// ErrUnknownCategory is returned when a registered category id does not
	// exist in the directory service.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownChannel is returned when a channel id cannot be found in any
	// project category or the archive.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrSortInProgress is returned when another instance holds the sort lease.
	ErrSortInProgress = errors.New("sort already in progress")
)

// Partitioner errors - Returned by balance partitioners.
var (
	// ErrInvalidGroupCount is returned when the requested group count is not
	// positive or exceeds the number of weight buckets plus one.
	ErrInvalidGroupCount = errors.New("invalid group count")
)

// Reconciler errors - Returned by position reconciliation.
var (
	// ErrInconsistentPositions is returned when the shared position space
	// contains duplicate or gapped ordinals and no correct move plan exists.
	ErrInconsistentPositions = errors.New("inconsistent channel positions")

	// ErrInvalidRank is returned when a desired rank lies outside the
	// sibling list of the target category.
	ErrInvalidRank = errors.New("invalid desired rank")
)

// Registry errors - Returned by category registries.
var (
	// ErrMalformedRegistry is returned when the registry file contains
	// anything other than one integer identifier per line.
	ErrMalformedRegistry = errors.New("malformed category registry")
)

// Directory errors - Returned by directory-service clients.
var (
	// ErrDirectoryUnavailable indicates the remote directory service did not
	// answer within the operation timeout.
	ErrDirectoryUnavailable = errors.New("directory service unavailable")

	// ErrMoveRejected is returned when the directory service refuses a
	// channel move or category rename.
	ErrMoveRejected = errors.New("move rejected by directory service")
)
