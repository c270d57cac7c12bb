// Package registry provides category registry implementations.
//
// A registry records which directory categories participate in sorting. The
// File registry persists the list in the interoperable flat format used by
// the wider tooling: one integer category identifier per line, nothing else.
// The Static registry keeps a fixed list in memory, which is useful for
// testing and for embedding scenarios where the category set is known at
// startup.
package registry
