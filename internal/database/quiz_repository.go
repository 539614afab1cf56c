package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// QuizRepository handles quiz persistence. Options live in a JSONB
// column and are marshalled here.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a new quiz repository.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// quizRow mirrors domain.Quiz with the raw JSONB options column.
type quizRow struct {
	domain.Quiz
	RawOptions []byte `db:"options"`
}

func (row *quizRow) toQuiz() (*domain.Quiz, error) {
	quiz := row.Quiz
	if err := json.Unmarshal(row.RawOptions, &quiz.Options); err != nil {
		return nil, fmt.Errorf("failed to decode quiz options: %w", err)
	}
	return &quiz, nil
}

const quizColumns = `
	id, subject_id, sub_topic_id, question, options, correct_answer,
	explanation, source_hash, source_url, source_text, created_at, updated_at
`

// Create inserts a quiz.
func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	options, err := json.Marshal(quiz.Options)
	if err != nil {
		return fmt.Errorf("failed to encode quiz options: %w", err)
	}

	query := `
		INSERT INTO quizzes (subject_id, sub_topic_id, question, options, correct_answer,
		                     explanation, source_hash, source_url, source_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		quiz.SubjectID,
		quiz.SubTopicID,
		quiz.Question,
		options,
		quiz.CorrectAnswer,
		quiz.Explanation,
		quiz.SourceHash,
		quiz.SourceURL,
		quiz.SourceText,
	).Scan(&quiz.ID, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	return nil
}

// GetByID retrieves a quiz. Returns nil when missing.
func (r *QuizRepository) GetByID(ctx context.Context, id int) (*domain.Quiz, error) {
	var row quizRow
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return row.toQuiz()
}

// GetByHash retrieves the quiz generated from a given source hash.
// Returns nil when no cached quiz exists.
func (r *QuizRepository) GetByHash(ctx context.Context, sourceHash string) (*domain.Quiz, error) {
	var row quizRow
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE source_hash = $1`

	err := r.db.GetContext(ctx, &row, query, sourceHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by hash: %w", err)
	}

	return row.toQuiz()
}

// ListBySubTopic retrieves up to limit quizzes for a sub topic, newest
// first.
func (r *QuizRepository) ListBySubTopic(ctx context.Context, subTopicID, limit int) ([]*domain.Quiz, error) {
	var rows []quizRow
	query := `
		SELECT ` + quizColumns + `
		FROM quizzes
		WHERE sub_topic_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &rows, query, subTopicID, limit); err != nil {
		return nil, fmt.Errorf("failed to list quizzes by sub topic: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quiz, err := rows[i].toQuiz()
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, nil
}

// UpdateSubTopicID re-homes a cached quiz under a different sub topic.
func (r *QuizRepository) UpdateSubTopicID(ctx context.Context, quizID int, subTopicID *int) error {
	query := `UPDATE quizzes SET sub_topic_id = $1, updated_at = now() WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, subTopicID, quizID); err != nil {
		return fmt.Errorf("failed to update quiz sub topic: %w", err)
	}

	return nil
}
