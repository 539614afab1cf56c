package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// RunsRepository handles classification run and candidate persistence.
type RunsRepository struct {
	db *sqlx.DB
}

// NewRunsRepository creates a new runs repository.
func NewRunsRepository(db *sqlx.DB) *RunsRepository {
	return &RunsRepository{db: db}
}

const runColumns = `
	id, request_content, source_type, text_preview, text_hash,
	auto_sub_topic_id, auto_confidence, final_sub_topic_id, status,
	strategy, min_confidence, keyword_weight, similarity_weight,
	max_candidates, candidate_count, rejection_reason, created_at, updated_at
`

// CreateWithCandidates inserts a run and its candidate rows in one
// transaction. The candidate RunID and Rank fields are filled in here.
func (r *RunsRepository) CreateWithCandidates(ctx context.Context, run *domain.AutoRun, candidates []*domain.AutoCandidate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	insertRun := `
		INSERT INTO auto_runs (request_content, source_type, text_preview, text_hash,
		                       auto_sub_topic_id, auto_confidence, final_sub_topic_id, status,
		                       strategy, min_confidence, keyword_weight, similarity_weight,
		                       max_candidates, candidate_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, insertRun,
		run.RequestContent,
		run.SourceType,
		run.TextPreview,
		run.TextHash,
		run.AutoSubTopicID,
		run.AutoConfidence,
		run.FinalSubTopicID,
		run.Status,
		run.Strategy,
		run.MinConfidence,
		run.KeywordWeight,
		run.SimilarityWeight,
		run.MaxCandidates,
		run.CandidateCount,
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	insertCandidate := `
		INSERT INTO auto_candidates (run_id, sub_topic_id, score, rank, category_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	for i, c := range candidates {
		c.RunID = run.ID
		c.Rank = i + 1
		err = tx.QueryRowContext(ctx, insertCandidate,
			c.RunID, c.SubTopicID, c.Score, c.Rank, c.CategoryPath,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// GetByID retrieves a run. Returns nil when missing.
func (r *RunsRepository) GetByID(ctx context.Context, id int) (*domain.AutoRun, error) {
	var run domain.AutoRun
	query := `SELECT ` + runColumns + ` FROM auto_runs WHERE id = $1`

	err := r.db.GetContext(ctx, &run, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// Finalize updates a run's final category, status and rejection reason.
func (r *RunsRepository) Finalize(ctx context.Context, id int, finalSubTopicID *int, status string, rejectionReason *string) (*domain.AutoRun, error) {
	var run domain.AutoRun
	query := `
		UPDATE auto_runs
		SET final_sub_topic_id = $1, status = $2, rejection_reason = $3, updated_at = now()
		WHERE id = $4
		RETURNING ` + runColumns

	err := r.db.GetContext(ctx, &run, query, finalSubTopicID, status, rejectionReason, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to finalize run: %w", err)
	}

	return &run, nil
}

// ListPending retrieves a newest-first page of pending runs plus the
// total pending count.
func (r *RunsRepository) ListPending(ctx context.Context, page, limit int) ([]*domain.AutoRun, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM auto_runs WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, domain.RunStatusPending); err != nil {
		return nil, 0, fmt.Errorf("failed to count pending runs: %w", err)
	}

	var runs []*domain.AutoRun
	query := `
		SELECT ` + runColumns + `
		FROM auto_runs
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	offset := (page - 1) * limit
	if err := r.db.SelectContext(ctx, &runs, query, domain.RunStatusPending, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list pending runs: %w", err)
	}

	return runs, total, nil
}

// CandidatesByRunIDs retrieves candidates for a set of runs, grouped by
// run id and ordered by rank.
func (r *RunsRepository) CandidatesByRunIDs(ctx context.Context, runIDs []int) (map[int][]*domain.AutoCandidate, error) {
	result := make(map[int][]*domain.AutoCandidate, len(runIDs))
	if len(runIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, run_id, sub_topic_id, score, rank, category_path, created_at
		FROM auto_candidates
		WHERE run_id IN (?)
		ORDER BY run_id, rank
	`, runIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates query: %w", err)
	}

	var candidates []*domain.AutoCandidate
	if err := r.db.SelectContext(ctx, &candidates, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	for _, c := range candidates {
		result[c.RunID] = append(result[c.RunID], c)
	}

	return result, nil
}
