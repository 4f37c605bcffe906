// Package hook orchestrates one qBittorrent post-download invocation:
// ensure the category directories exist, classify the torrent by name,
// and relocate it through the WebUI API unless it already sits at its
// category target. Each failure class is tagged with a services marker;
// the process exit decision stays with the caller.
package hook
