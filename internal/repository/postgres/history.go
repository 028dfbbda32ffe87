package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkallio/fridgechef/internal/domain"
)

// HistoryRepository implements domain.AnalysisHistoryRepository
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new analysis-history repository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{pool: db.Pool}
}

// Create inserts a new analysis record
func (r *HistoryRepository) Create(ctx context.Context, record *domain.AnalysisRecord) error {
	query := `
		INSERT INTO analysis_history
			(id, client_id, locale, success, recipe_title, error_category,
			 provider, model, tokens_used, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.ClientID,
		record.Locale,
		record.Success,
		record.RecipeTitle,
		record.ErrorCategory,
		record.Provider,
		record.Model,
		record.TokensUsed,
		record.LatencyMs,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}

	return nil
}

// ListByClient retrieves the most recent analysis records for a client
func (r *HistoryRepository) ListByClient(ctx context.Context, clientID string, limit int) ([]domain.AnalysisRecord, error) {
	query := `
		SELECT id, client_id, locale, success, recipe_title, error_category,
		       provider, model, tokens_used, latency_ms, created_at
		FROM analysis_history
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	defer rows.Close()

	var records []domain.AnalysisRecord
	for rows.Next() {
		var rec domain.AnalysisRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.ClientID,
			&rec.Locale,
			&rec.Success,
			&rec.RecipeTitle,
			&rec.ErrorCategory,
			&rec.Provider,
			&rec.Model,
			&rec.TokensUsed,
			&rec.LatencyMs,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
