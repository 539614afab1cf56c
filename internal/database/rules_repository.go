package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// RulesRepository handles database operations for category rules.
type RulesRepository struct {
	db *sqlx.DB
}

// NewRulesRepository creates a new rules repository.
func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

// ListActive retrieves the active rules.
func (r *RulesRepository) ListActive(ctx context.Context) ([]*domain.CategoryRule, error) {
	var rules []*domain.CategoryRule
	query := `
		SELECT id, sub_topic_id, weight, priority, is_active, created_at, updated_at
		FROM category_rules
		WHERE is_active = TRUE
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}

	return rules, nil
}

// List retrieves every rule, active or not.
func (r *RulesRepository) List(ctx context.Context) ([]*domain.CategoryRule, error) {
	var rules []*domain.CategoryRule
	query := `
		SELECT id, sub_topic_id, weight, priority, is_active, created_at, updated_at
		FROM category_rules
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	return rules, nil
}

// Upsert creates or replaces the rules in one transaction. One rule per
// sub topic is enforced by the unique constraint.
func (r *RulesRepository) Upsert(ctx context.Context, rules []*domain.CategoryRule) error {
	if len(rules) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO category_rules (sub_topic_id, weight, priority, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub_topic_id) DO UPDATE
		SET weight = EXCLUDED.weight,
		    priority = EXCLUDED.priority,
		    is_active = EXCLUDED.is_active,
		    updated_at = now()
		RETURNING id, created_at, updated_at
	`

	for _, rule := range rules {
		err := tx.QueryRowContext(
			ctx,
			query,
			rule.SubTopicID,
			rule.Weight,
			rule.Priority,
			rule.IsActive,
		).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert rule for sub topic %d: %w", rule.SubTopicID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rule upsert: %w", err)
	}

	return nil
}
