// Package library owns the sorted library directory layout.
//
// The Resolver computes one target directory per category from the
// configured base directory and subdirectory names, provisions all of them
// eagerly with group-writable permissions, and answers path lookups for the
// hook pipeline. SamePath implements the placement check that lets an
// already-sorted torrent complete without touching the qBittorrent API.
package library
