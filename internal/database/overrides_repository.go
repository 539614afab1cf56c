package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// OverridesRepository records operator overrides of automatic picks.
type OverridesRepository struct {
	db *sqlx.DB
}

// NewOverridesRepository creates a new overrides repository.
func NewOverridesRepository(db *sqlx.DB) *OverridesRepository {
	return &OverridesRepository{db: db}
}

// Create appends an override record.
func (r *OverridesRepository) Create(ctx context.Context, override *domain.AutoOverride) error {
	query := `
		INSERT INTO auto_overrides (run_id, auto_sub_topic_id, final_sub_topic_id, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		override.RunID,
		override.AutoSubTopicID,
		override.FinalSubTopicID,
		override.Reason,
	).Scan(&override.ID, &override.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create override: %w", err)
	}

	return nil
}
