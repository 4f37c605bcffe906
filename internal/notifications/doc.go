// Package notifications delivers hook run outcomes via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Enumerated event types cover the run outcomes so the hook can
// emit consistent messages without duplicating HTTP glue.
package notifications
