package chansorter

import "github.com/UberPyro/ChannelSorter2/types"

// Sentinel errors returned by the Sorter, re-exported from the types
// subpackage so callers can match with errors.Is against either name.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrDirectoryRequired is returned when the directory service is nil.
	ErrDirectoryRequired = types.ErrDirectoryRequired

	// ErrRegistryRequired is returned when the category registry is nil.
	ErrRegistryRequired = types.ErrRegistryRequired

	// ErrPartitionerRequired is returned when the partitioner is nil.
	ErrPartitionerRequired = types.ErrPartitionerRequired

	// ErrNoCategories is returned when the registry names no project categories.
	ErrNoCategories = types.ErrNoCategories

	// ErrUnknownCategory is returned when a registered category id does not
	// exist in the directory service.
	ErrUnknownCategory = types.ErrUnknownCategory

	// ErrUnknownChannel is returned when a channel id cannot be found in any
	// project category or the archive.
	ErrUnknownChannel = types.ErrUnknownChannel

	// ErrSortInProgress is returned when another instance holds the sort lock.
	ErrSortInProgress = types.ErrSortInProgress
)
