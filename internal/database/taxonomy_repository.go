package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/corecontent"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// TaxonomyRepository handles database operations for the subject,
// main-topic and sub-topic hierarchy.
type TaxonomyRepository struct {
	db *sqlx.DB
}

// NewTaxonomyRepository creates a new taxonomy repository.
func NewTaxonomyRepository(db *sqlx.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

const subTopicWithRelations = `
	SELECT st.id, st.main_topic_id, st.name, st.description, st.core_content, st.source_type,
	       st.created_at, st.updated_at,
	       s.id AS subject_id, mt.name AS main_topic_name, s.name AS subject_name
	FROM sub_topics st
	JOIN main_topics mt ON mt.id = st.main_topic_id
	JOIN subjects s ON s.id = mt.subject_id
`

// ListSubjects retrieves all subjects ordered by id.
func (r *TaxonomyRepository) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	var subjects []*domain.Subject
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM subjects
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, nil
}

// GetSubject retrieves one subject by id. Returns nil when missing.
func (r *TaxonomyRepository) GetSubject(ctx context.Context, id int) (*domain.Subject, error) {
	var subject domain.Subject
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM subjects
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &subject, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return &subject, nil
}

// ListWithRelations retrieves every sub topic with its main-topic and
// subject names, for the per-request taxonomy scan.
func (r *TaxonomyRepository) ListWithRelations(ctx context.Context) ([]*domain.SubTopic, error) {
	var subTopics []*domain.SubTopic
	query := subTopicWithRelations + " ORDER BY st.id"

	if err := r.db.SelectContext(ctx, &subTopics, query); err != nil {
		return nil, fmt.Errorf("failed to list sub topics: %w", err)
	}

	return subTopics, nil
}

// ListByMainTopic retrieves the sub topics of one main topic.
func (r *TaxonomyRepository) ListByMainTopic(ctx context.Context, mainTopicID int) ([]*domain.SubTopic, error) {
	var subTopics []*domain.SubTopic
	query := subTopicWithRelations + " WHERE st.main_topic_id = $1 ORDER BY st.id"

	if err := r.db.SelectContext(ctx, &subTopics, query, mainTopicID); err != nil {
		return nil, fmt.Errorf("failed to list sub topics by main topic: %w", err)
	}

	return subTopics, nil
}

// GetSubTopic retrieves one sub topic with relations. Returns nil when
// missing.
func (r *TaxonomyRepository) GetSubTopic(ctx context.Context, id int) (*domain.SubTopic, error) {
	var subTopic domain.SubTopic
	query := subTopicWithRelations + " WHERE st.id = $1"

	err := r.db.GetContext(ctx, &subTopic, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sub topic: %w", err)
	}

	return &subTopic, nil
}

// AppendContent prepends a tagged entry to the sub topic's core content
// inside one transaction. Returns nil when the sub topic is missing.
func (r *TaxonomyRepository) AppendContent(ctx context.Context, id int, text, sourceType string) (*domain.SubTopic, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var current sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT core_content FROM sub_topics WHERE id = $1 FOR UPDATE`, id,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock sub topic: %w", err)
	}

	updated := corecontent.Prepend(current.String, text, sourceType)

	_, err = tx.ExecContext(ctx,
		`UPDATE sub_topics SET core_content = $1, source_type = $2, updated_at = now() WHERE id = $3`,
		updated, sourceType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update core content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit core content update: %w", err)
	}

	return r.GetSubTopic(ctx, id)
}

// SetContent registers core content on a sub topic that has none yet.
func (r *TaxonomyRepository) SetContent(ctx context.Context, id int, content, sourceType string) (*domain.SubTopic, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sub_topics SET core_content = $1, source_type = $2, updated_at = now() WHERE id = $3`,
		content, sourceType, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set core content: %w", err)
	}

	return r.GetSubTopic(ctx, id)
}
