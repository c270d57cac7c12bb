// Package directory provides implementations of the directory-service
// interface that owns categories and channels.
//
// Three implementations are included:
//
//   - Memory: An in-process directory applying the same dense renumbering a
//     real chat platform performs on every move. Used by tests and examples,
//     and as the backing store behind a Server.
//   - Client: A NATS request/reply client speaking the JSON wire protocol in
//     wire.go. This is what a sorter instance uses when the platform gateway
//     runs in a separate process.
//   - Server: The responder side of the same protocol, exposing any
//     types.Directory implementation over NATS subjects.
package directory
