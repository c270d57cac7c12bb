// Package types provides core type definitions and interfaces for ChannelSorter.
//
// This package contains shared types that are used across multiple packages in
// the module. Keeping them in a separate package avoids import cycles between
// the root chansorter package and its internal implementations.
//
// Key types:
//   - Channel: An orderable, positionable chat channel
//   - Category: An ordered group of channels sharing one position space
//   - Directory: The remote directory-service interface
//   - Registry: Persistence of which categories are project categories
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
