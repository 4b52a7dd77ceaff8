// Package history caches the user's research history in the local database.
// The cache mirrors the store's own ordering; a refresh replaces it wholesale
// instead of merging, so reads are only as fresh as the last refresh.
package history

import (
	"context"

	"github.com/deepbrief/deepbrief/internal/client/models"
)

type Repository interface {
	// DeleteAll removes every cached record. Called at the start of a refresh.
	DeleteAll(ctx context.Context) error
	// Insert appends a record at the given position in store order.
	Insert(ctx context.Context, position int, rec models.HistoryRecord) error
	// GetAll returns all cached records in store order.
	GetAll(ctx context.Context) ([]models.HistoryRecord, error)
}
