package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepbrief/deepbrief/internal/client/models"
	"github.com/deepbrief/deepbrief/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history cache: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, position int, rec models.HistoryRecord) error {
	sources, err := json.Marshal(rec.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO history (position, id, user_id, topic, report, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, position, rec.ID, rec.UserID, rec.Topic, rec.Report, string(sources), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, topic, report, sources, created_at
		FROM history ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to select history records: %w", err)
	}
	defer rows.Close()

	var result []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		var sources string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Topic, &rec.Report, &sources, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sources), &rec.Sources); err != nil {
			return nil, fmt.Errorf("failed to decode sources: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
