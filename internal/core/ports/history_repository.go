package ports

import (
	"context"

	"supply/internal/core/domain/model/history"
)

// HistoryRepository is the append-only store of audit records.
type HistoryRepository interface {
	// AddEntries appends history entries.
	AddEntries(ctx context.Context, entries ...history.Entry) error

	// AddItemLogs appends per-item preparation records.
	AddItemLogs(ctx context.Context, logs ...history.ItemLog) error
}
