// Package balance provides balanced alphabetic partitioning of weight sequences.
//
// A partitioner slices an ordered sequence of non-negative weights (one per
// leading-letter bucket) into a fixed number of contiguous segments so that
// segment sums come out as even as possible. The cost of a candidate boundary
// set is the sum of squares of its segment sums; squaring penalizes large
// imbalances super-linearly, biasing the search toward equal-sized groups
// rather than merely non-decreasing ones.
//
// Two implementations are provided:
//
//   - Exhaustive: Brute-force enumeration of every valid boundary set.
//     Exact, and fast enough while the bucket count stays small (letters of
//     the alphabet) and the group count stays in the single digits.
//   - DynamicProgramming: O(n² · groups) formulation producing identical
//     output, including the tie-break, for larger inputs.
//
// Both keep the same determinism guarantee: among equal-cost boundary sets,
// the lexicographically smallest is returned.
//
// Custom partitioners can be implemented by satisfying the Partitioner interface.
package balance
