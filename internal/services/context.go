package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	torrentKey contextKey = "torrent_hash"
)

// WithRunID annotates context with the invocation correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTorrentHash annotates context with the torrent being processed.
func WithTorrentHash(ctx context.Context, hash string) context.Context {
	if hash == "" {
		return ctx
	}
	return context.WithValue(ctx, torrentKey, hash)
}

// TorrentHashFromContext extracts the torrent hash if present.
func TorrentHashFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(torrentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
