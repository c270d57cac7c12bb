// Package chansorter keeps a large, growing set of named channels organized
// into a fixed number of alphabetically contiguous, roughly equal-sized
// categories.
//
// The sorter re-derives everything from the directory service's current truth
// on each run: it flattens the registered project categories, computes
// first-letter frequency weights, asks a balance.Partitioner for the boundary
// set minimizing the sum of squared group sizes, relabels the categories to
// match their letter ranges, and moves each channel to its sorted slot with a
// single directory move computed by the reconcile package.
//
// # Quick Start
//
//	dir := mydirectory.New(...)            // types.Directory implementation
//	reg := registry.NewFile("categories.txt")
//
//	sorter, err := chansorter.New(chansorter.DefaultConfig(), dir, reg, balance.NewExhaustive())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stats, err := sorter.Sort(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("renamed %d categories, moved %d channels\n", stats.Renames, stats.Moves)
//
// # Position Model
//
// Channel positions form one dense ordinal space shared across every
// category: moving a channel in one category shifts positions of channels in
// other categories. The sorter issues exactly one directory move per
// relocated channel and relies on the directory service keeping the space
// dense on its side; the reconcile package computes which other channels
// shift so successive moves in one run see the evolving state.
//
// # Event-Driven Repositioning
//
// Reposition places a single renamed or restored channel back into its
// sorted slot without a full run. The events package delivers platform
// rename/restore notifications to the sorter; Sorter implements
// events.Handler directly:
//
//	listener, _ := events.NewListener(nc, events.Config{}, sorter)
//	listener.Start(ctx)
//
// # Serialization
//
// Concurrent runs against one position space corrupt it. A single Sorter
// serializes its own operations; use WithLock and the internal KV lease (see
// cmd/chansorter) to serialize across instances.
package chansorter
