package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/deepbrief/deepbrief/internal/client/api"
	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/client/repositories/history"
	"github.com/deepbrief/deepbrief/internal/dbx"
	"github.com/deepbrief/deepbrief/internal/logging"
)

// Historian persists completed generations to the remote history log and
// keeps the local cache in sync with it.
//
// Contract:
//   - Append: one call per successful generation; retried a bounded number of
//     times; the caller decides what to do with a final failure (generation
//     success never depends on it).
//   - Refresh: fetches the full list and replaces the local cache wholesale.
//     No incremental merge; the store's own ordering is trusted.
//   - Cached: returns the last refreshed snapshot (works offline).
type Historian interface {
	Append(ctx context.Context, item api.HistoryAppend) error
	Refresh(ctx context.Context, userID string) ([]models.HistoryRecord, error)
	Cached(ctx context.Context) ([]models.HistoryRecord, error)
}

type historyService struct {
	client        api.Client
	db            *sql.DB
	log           logging.Logger
	retryInterval time.Duration
}

// NewHistoryService builds a Historian over the remote client and the local
// cache database. retryInterval is the initial backoff between append
// attempts.
func NewHistoryService(client api.Client, db *sql.DB, log logging.Logger, retryInterval time.Duration) Historian {
	return &historyService{client: client, db: db, log: log, retryInterval: retryInterval}
}

// appendMaxRetries bounds the append retry queue: 1 call + 2 retries.
const appendMaxRetries = 2

func (s *historyService) Append(ctx context.Context, item api.HistoryAppend) error {
	backoff := retry.WithMaxRetries(appendMaxRetries, retry.NewExponential(s.retryInterval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.client.AppendHistory(ctx, item); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "history append failed", "topic", item.Topic, "error", err)
		return err
	}
	return nil
}

func (s *historyService) Refresh(ctx context.Context, userID string) ([]models.HistoryRecord, error) {
	items, err := s.client.History(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "history refresh failed", "error", err)
		return nil, err
	}

	records := make([]models.HistoryRecord, 0, len(items))
	for _, item := range items {
		sources := item.Sources
		if sources == nil {
			sources = []string{}
		}
		records = append(records, models.HistoryRecord{
			ID:        item.ID.String(),
			UserID:    userID,
			Topic:     item.Topic,
			Report:    item.Report,
			Sources:   sources,
			CreatedAt: item.CreatedAt,
		})
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := history.NewSQLiteRepository(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		for i, rec := range records {
			if err := repo.Insert(ctx, i, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The fetched list is still good; only the offline snapshot is stale.
		s.log.Warn(ctx, "failed to update history cache", "error", err)
	}

	return records, nil
}

func (s *historyService) Cached(ctx context.Context) ([]models.HistoryRecord, error) {
	return history.NewSQLiteRepository(s.db).GetAll(ctx)
}
