// Package preflight provides readiness checks for the qBittorrent WebUI
// and the filesystem paths the hook depends on.
//
// The CLI "qbsort status" command uses RunAll to display service health
// before the hook is wired into qBittorrent. Checks report current state
// and never create or repair anything.
package preflight
