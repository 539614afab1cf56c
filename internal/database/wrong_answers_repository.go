package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// WrongAnswersRepository persists the user's wrong-answer review notes.
type WrongAnswersRepository struct {
	db *sqlx.DB
}

// NewWrongAnswersRepository creates a new wrong answers repository.
func NewWrongAnswersRepository(db *sqlx.DB) *WrongAnswersRepository {
	return &WrongAnswersRepository{db: db}
}

type wrongAnswerRow struct {
	domain.WrongAnswer
	RawOptions []byte `db:"options"`
}

func (row *wrongAnswerRow) toWrongAnswer() (*domain.WrongAnswer, error) {
	wa := row.WrongAnswer
	if err := json.Unmarshal(row.RawOptions, &wa.Options); err != nil {
		return nil, fmt.Errorf("failed to decode wrong answer options: %w", err)
	}
	return &wa, nil
}

// Upsert saves a wrong answer, replacing any previous note for the same
// quiz.
func (r *WrongAnswersRepository) Upsert(ctx context.Context, wa *domain.WrongAnswer) error {
	options, err := json.Marshal(wa.Options)
	if err != nil {
		return fmt.Errorf("failed to encode wrong answer options: %w", err)
	}

	query := `
		INSERT INTO wrong_answers (quiz_id, question, options, selected_answer, correct_answer,
		                           explanation, subject_id, sub_topic_id, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (quiz_id) DO UPDATE
		SET question = EXCLUDED.question,
		    options = EXCLUDED.options,
		    selected_answer = EXCLUDED.selected_answer,
		    correct_answer = EXCLUDED.correct_answer,
		    explanation = EXCLUDED.explanation,
		    subject_id = EXCLUDED.subject_id,
		    sub_topic_id = EXCLUDED.sub_topic_id,
		    saved_at = now()
		RETURNING id, saved_at
	`

	err = r.db.QueryRowContext(ctx, query,
		wa.QuizID,
		wa.Question,
		options,
		wa.SelectedAnswer,
		wa.CorrectAnswer,
		wa.Explanation,
		wa.SubjectID,
		wa.SubTopicID,
	).Scan(&wa.ID, &wa.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert wrong answer: %w", err)
	}

	return nil
}

// List retrieves a newest-first page of wrong answers plus the total
// count.
func (r *WrongAnswersRepository) List(ctx context.Context, page, limit int) ([]*domain.WrongAnswer, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM wrong_answers`); err != nil {
		return nil, 0, fmt.Errorf("failed to count wrong answers: %w", err)
	}

	var rows []wrongAnswerRow
	query := `
		SELECT id, quiz_id, question, options, selected_answer, correct_answer,
		       explanation, subject_id, sub_topic_id, saved_at
		FROM wrong_answers
		ORDER BY saved_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	offset := (page - 1) * limit
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list wrong answers: %w", err)
	}

	answers := make([]*domain.WrongAnswer, 0, len(rows))
	for i := range rows {
		wa, err := rows[i].toWrongAnswer()
		if err != nil {
			return nil, 0, err
		}
		answers = append(answers, wa)
	}

	return answers, total, nil
}

// Delete removes the note for one quiz. Reports whether a row existed.
func (r *WrongAnswersRepository) Delete(ctx context.Context, quizID int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wrong_answers WHERE quiz_id = $1`, quizID)
	if err != nil {
		return false, fmt.Errorf("failed to delete wrong answer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}
