// Package events delivers chat-platform channel events to a handler.
//
// The platform gateway publishes a JSON event on a NATS subject whenever a
// channel is renamed, or when activity in an archived channel calls for its
// restoration. The Listener subscribes to those subjects, drops duplicate
// deliveries using a content-hash window, and invokes the handler with
// jittered retries on transient failures.
//
// Handler invocations are serialized: events are processed one at a time, in
// arrival order, because concurrent repositioning runs against one shared
// position space must never overlap.
package events
