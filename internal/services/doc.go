// Package services defines shared utilities consumed by the hook pipeline
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation identifiers and torrent
//     hashes for logging and journaling.
//   - Structured error markers plus the Wrap helper that classify failures
//     (configuration, directory, auth, apply) without terminating the
//     process; the command entrypoint owns the exit decision.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
