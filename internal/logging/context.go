package logging

import (
	"context"
	"log/slog"

	"qbsort/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for invocation correlation identifiers.
	FieldRunID = "run_id"
	// FieldTorrentHash is the standardized structured logging key for torrent hashes.
	FieldTorrentHash = "torrent_hash"
	// FieldCategory is the standardized structured logging key for classification results.
	FieldCategory = "category"
	// FieldOutcome is the standardized structured logging key for run outcomes.
	FieldOutcome = "outcome"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if hash, ok := services.TorrentHashFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldTorrentHash, hash))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
