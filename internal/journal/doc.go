// Package journal persists a history of hook runs in a small SQLite
// database so operators can audit what the hook did to each torrent.
package journal
