package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// SettingsRepository handles the singleton auto-classification settings
// row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the settings row, inserting the defaults the first
// time it is read.
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*domain.AutoSettings, error) {
	var settings domain.AutoSettings
	query := `
		SELECT id, min_confidence, strategy, keyword_weight, similarity_weight,
		       max_candidates, text_preview_length, created_at, updated_at
		FROM auto_settings
		ORDER BY id
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &settings, query)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	defaults := domain.DefaultAutoSettings()
	insert := `
		INSERT INTO auto_settings (min_confidence, strategy, keyword_weight, similarity_weight,
		                           max_candidates, text_preview_length)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, min_confidence, strategy, keyword_weight, similarity_weight,
		          max_candidates, text_preview_length, created_at, updated_at
	`

	err = r.db.GetContext(ctx, &settings, insert,
		defaults.MinConfidence,
		defaults.Strategy,
		defaults.KeywordWeight,
		defaults.SimilarityWeight,
		defaults.MaxCandidates,
		defaults.TextPreviewLength,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	return &settings, nil
}

// Update applies a partial change to the settings row and returns the
// updated row. Nil fields in the update keep their current value.
func (r *SettingsRepository) Update(ctx context.Context, update domain.SettingsUpdate) (*domain.AutoSettings, error) {
	current, err := r.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if update.MinConfidence != nil {
		current.MinConfidence = *update.MinConfidence
	}
	if update.Strategy != nil {
		current.Strategy = *update.Strategy
	}
	if update.KeywordWeight != nil {
		current.KeywordWeight = *update.KeywordWeight
	}
	if update.SimilarityWeight != nil {
		current.SimilarityWeight = *update.SimilarityWeight
	}
	if update.MaxCandidates != nil {
		current.MaxCandidates = *update.MaxCandidates
	}
	if update.TextPreviewLength != nil {
		current.TextPreviewLength = *update.TextPreviewLength
	}

	query := `
		UPDATE auto_settings
		SET min_confidence = $1, strategy = $2, keyword_weight = $3,
		    similarity_weight = $4, max_candidates = $5, text_preview_length = $6,
		    updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		current.MinConfidence,
		current.Strategy,
		current.KeywordWeight,
		current.SimilarityWeight,
		current.MaxCandidates,
		current.TextPreviewLength,
		current.ID,
	).Scan(&current.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return current, nil
}
