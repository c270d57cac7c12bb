package chansorter

import "github.com/UberPyro/ChannelSorter2/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces via type aliases. Internal packages depend on `types` without
// depending on the root `chansorter` package, avoiding import cycles, while
// users still get the convenient `chansorter.Channel`, `chansorter.Logger`,
// etc.
type (
	Channel  = types.Channel
	Category = types.Category
)

// Re-export interfaces from the types subpackage for convenience.
type (
	Directory        = types.Directory
	Registry         = types.Registry
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)
