package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called concurrently and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces so components
// can depend on just the slice they emit.
type MetricsCollector interface {
	SorterMetrics
	ListenerMetrics
}

// SorterMetrics defines metrics for sorting runs and repositioning.
type SorterMetrics interface {
	// RecordSortDuration records the wall-clock time of a full sorting run.
	//
	// Parameters:
	//   - seconds: Time taken in seconds
	RecordSortDuration(seconds float64)

	// RecordChannelMoves records how many channels a run relocated.
	RecordChannelMoves(count int)

	// RecordCategoryRenames records how many category labels a run changed.
	RecordCategoryRenames(count int)

	// RecordReposition records a single-channel reposition attempt.
	//
	// Parameters:
	//   - success: true when the move plan was applied, false otherwise
	RecordReposition(success bool)
}

// ListenerMetrics defines metrics for the platform event listener.
type ListenerMetrics interface {
	// RecordEventReceived counts an accepted platform event by kind
	// ("renamed", "restored").
	RecordEventReceived(kind string)

	// RecordEventDropped counts a discarded event by reason
	// ("duplicate", "decode", "handler").
	RecordEventDropped(reason string)
}
