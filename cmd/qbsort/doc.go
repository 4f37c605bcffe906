// Package main hosts the qbsort CLI entrypoint and command graph.
//
// The root command is the hook itself: qBittorrent invokes it with the
// torrent hash, name, and save path. Subcommands cover rule dry-runs,
// journal history, readiness checks, and configuration scaffolding.
//
// Keep this package lean: new behavior belongs in the internal packages
// first and is surfaced here through dedicated commands or flags.
package main
