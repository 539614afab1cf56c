package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// SubmitAnswerInput is one answered question. An empty ExamSessionID
// starts a new session.
type SubmitAnswerInput struct {
	QuizID        int
	UserAnswer    *int
	ExamSessionID string
}

// AnswerResult pairs the stored record with the quiz it answered so the
// caller can show the correct answer and explanation.
type AnswerResult struct {
	Record *domain.ExamRecord
	Quiz   *domain.Quiz
}

// SubmitAnswer grades and stores one answer.
func (s *QuizService) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*AnswerResult, error) {
	q, err := s.GetQuiz(ctx, input.QuizID)
	if err != nil {
		return nil, err
	}

	sessionID := input.ExamSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	record := &domain.ExamRecord{
		QuizID:        input.QuizID,
		UserAnswer:    input.UserAnswer,
		ExamSessionID: sessionID,
	}
	if input.UserAnswer != nil {
		isCorrect := *input.UserAnswer == q.CorrectAnswer
		record.IsCorrect = &isCorrect
	}

	if err := s.exams.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	return &AnswerResult{Record: record, Quiz: q}, nil
}

// ExamSummary aggregates one exam session.
type ExamSummary struct {
	ExamSessionID string
	Total         int
	Correct       int
	Score         float64
	Records       []*domain.ExamRecord
}

// ExamResults summarizes an exam session. An unknown session id returns
// an empty summary rather than an error.
func (s *QuizService) ExamResults(ctx context.Context, sessionID string) (*ExamSummary, error) {
	records, err := s.exams.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, record := range records {
		if record.IsCorrect != nil && *record.IsCorrect {
			correct++
		}
	}

	score := 0.0
	if len(records) > 0 {
		score = float64(correct) / float64(len(records)) * 100
	}

	return &ExamSummary{
		ExamSessionID: sessionID,
		Total:         len(records),
		Correct:       correct,
		Score:         score,
		Records:       records,
	}, nil
}

// SaveWrongAnswer copies a quiz into the wrong-answer note. Saving the
// same quiz again replaces the previous note.
func (s *QuizService) SaveWrongAnswer(ctx context.Context, quizID, selectedAnswer int) (*domain.WrongAnswer, error) {
	q, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	wa := &domain.WrongAnswer{
		QuizID:         q.ID,
		Question:       q.Question,
		Options:        q.Options,
		SelectedAnswer: selectedAnswer,
		CorrectAnswer:  q.CorrectAnswer,
		SubTopicID:     q.SubTopicID,
	}
	if q.Explanation != "" {
		explanation := q.Explanation
		wa.Explanation = &explanation
	}
	subjectID := q.SubjectID
	wa.SubjectID = &subjectID

	if err := s.wrongAnswers.Upsert(ctx, wa); err != nil {
		return nil, err
	}

	s.logger.Debug("wrong answer saved", logger.Int("quiz_id", quizID))

	return wa, nil
}

// ListWrongAnswers returns a newest-first page of the wrong-answer note.
func (s *QuizService) ListWrongAnswers(ctx context.Context, page, limit int) ([]*domain.WrongAnswer, int, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	answers, total, err := s.wrongAnswers.List(ctx, page, limit)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	return answers, total, page, limit, nil
}

// DeleteWrongAnswer removes one quiz from the note.
func (s *QuizService) DeleteWrongAnswer(ctx context.Context, quizID int) error {
	deleted, err := s.wrongAnswers.Delete(ctx, quizID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound("오답노트에 저장된 문제가 아닙니다.")
	}
	return nil
}
