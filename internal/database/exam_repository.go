package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// ExamRepository persists answered questions grouped by exam session.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository creates a new exam repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// CreateRecord inserts one answered question.
func (r *ExamRepository) CreateRecord(ctx context.Context, record *domain.ExamRecord) error {
	query := `
		INSERT INTO exam_records (quiz_id, user_answer, is_correct, exam_session_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		record.QuizID,
		record.UserAnswer,
		record.IsCorrect,
		record.ExamSessionID,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create exam record: %w", err)
	}

	return nil
}

// ListBySession retrieves the records of one exam session in answer
// order.
func (r *ExamRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.ExamRecord, error) {
	var records []*domain.ExamRecord
	query := `
		SELECT id, quiz_id, user_answer, is_correct, exam_session_id, created_at, updated_at
		FROM exam_records
		WHERE exam_session_id = $1
		ORDER BY id
	`

	if err := r.db.SelectContext(ctx, &records, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list exam records: %w", err)
	}

	return records, nil
}
