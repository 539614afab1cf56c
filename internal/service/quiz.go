package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/EHWIYA/adsp-quiz-back/internal/ai"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/quiz"
	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
	"github.com/EHWIYA/adsp-quiz-back/internal/youtube"
)

const (
	defaultSubjectID  = 1
	defaultStudyCount = 5
	maxStudyCount     = 20
)

// Quiz source types. The quiz endpoints accept "url" for YouTube links,
// unlike the classification endpoint's "youtube_url".
const (
	QuizSourceText = "text"
	QuizSourceURL  = "url"
)

// QuizService generates and serves quizzes, exam sessions and the
// wrong-answer note.
type QuizService struct {
	quizzes      QuizStore
	exams        ExamStore
	wrongAnswers WrongAnswerStore
	categories   CategoryStore
	generator    QuizGenerator
	transcripts  TranscriptResolver
	telemetry    *telemetry.Provider
	logger       logger.Logger

	// newRand is swapped in tests for deterministic variation.
	newRand func() *rand.Rand
}

// NewQuizService wires the quiz workflow.
func NewQuizService(
	quizzes QuizStore,
	exams ExamStore,
	wrongAnswers WrongAnswerStore,
	categories CategoryStore,
	generator QuizGenerator,
	transcripts TranscriptResolver,
	tp *telemetry.Provider,
	log logger.Logger,
) *QuizService {
	return &QuizService{
		quizzes:      quizzes,
		exams:        exams,
		wrongAnswers: wrongAnswers,
		categories:   categories,
		generator:    generator,
		transcripts:  transcripts,
		telemetry:    tp,
		logger:       log,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// GenerateInput is one ad-hoc quiz generation request.
type GenerateInput struct {
	SourceType string
	Content    string
	SubjectID  int
}

// Generate produces one quiz from raw text or a YouTube URL. Identical
// source text returns the cached quiz instead of calling the model.
func (s *QuizService) Generate(ctx context.Context, input GenerateInput) (*domain.Quiz, bool, error) {
	start := time.Now()

	subjectID := input.SubjectID
	if subjectID <= 0 {
		subjectID = defaultSubjectID
	}

	text, sourceURL, err := s.resolveQuizText(ctx, input)
	if err != nil {
		return nil, false, err
	}

	sourceHash := youtube.Hash(text)
	cached, err := s.quizzes.GetByHash(ctx, sourceHash)
	if err != nil {
		return nil, false, err
	}
	if cached != nil {
		s.recordGeneration(ctx, "cached", time.Since(start))
		return cached, true, nil
	}

	generated, err := s.generateOne(ctx, text, subjectID, start)
	if err != nil {
		return nil, false, err
	}

	newQuiz := &domain.Quiz{
		SubjectID:     subjectID,
		Question:      generated.Question,
		Options:       generated.Options,
		CorrectAnswer: generated.CorrectAnswer,
		Explanation:   generated.Explanation,
		SourceHash:    sourceHash,
		SourceURL:     sourceURL,
	}
	if sourceURL == nil {
		newQuiz.SourceText = &text
	}

	if err := s.quizzes.Create(ctx, newQuiz); err != nil {
		return nil, false, err
	}

	s.recordGeneration(ctx, "created", time.Since(start))
	return newQuiz, false, nil
}

// GenerateStudy builds a batch of quizzes for one sub topic from its
// accumulated core content. Cached quizzes are reused with variation;
// missing slots are generated. A model overload mid-batch returns the
// partial batch rather than failing the request.
func (s *QuizService) GenerateStudy(ctx context.Context, subTopicID, count int) ([]*domain.Quiz, error) {
	if count < 1 {
		count = defaultStudyCount
	}
	if count > maxStudyCount {
		count = maxStudyCount
	}

	subTopic, err := s.categories.GetSubTopic(ctx, subTopicID)
	if err != nil {
		return nil, err
	}
	if subTopic == nil {
		return nil, domain.ErrNotFound("세부항목을 찾을 수 없습니다.")
	}

	if subTopic.CoreContent == nil || strings.TrimSpace(*subTopic.CoreContent) == "" {
		return nil, domain.ErrNotFound("등록된 핵심 정보가 없습니다.")
	}
	content := *subTopic.CoreContent

	subjectID := subTopic.SubjectID
	if subjectID <= 0 {
		subjectID = defaultSubjectID
	}

	rng := s.newRand()

	results := make([]*domain.Quiz, 0, count)
	existing, err := s.quizzes.ListBySubTopic(ctx, subTopicID, count)
	if err != nil {
		return nil, err
	}
	for _, q := range existing {
		varied := quiz.Vary(*q, "", rng)
		results = append(results, &varied)
	}

	for i := len(results); i < count; i++ {
		itemHash := youtube.Hash(fmt.Sprintf("%s_%d_%d", content, subTopicID, i))

		reused, reuseErr := s.reuseByHash(ctx, itemHash, subTopicID)
		if reuseErr != nil {
			return nil, reuseErr
		}
		if reused != nil {
			varied := quiz.Vary(*reused, "", rng)
			results = append(results, &varied)
			continue
		}

		start := time.Now()
		generated, genErr := s.generateOne(ctx, content, subjectID, start)
		if genErr != nil {
			if len(results) > 0 {
				s.logger.Warn("study batch cut short",
					logger.Int("sub_topic_id", subTopicID),
					logger.Int("generated", len(results)),
					logger.Int("requested", count),
					logger.Error(genErr))
				break
			}
			return nil, genErr
		}

		newQuiz := &domain.Quiz{
			SubjectID:     subjectID,
			SubTopicID:    &subTopicID,
			Question:      generated.Question,
			Options:       generated.Options,
			CorrectAnswer: generated.CorrectAnswer,
			Explanation:   generated.Explanation,
			SourceHash:    itemHash,
			SourceText:    &content,
		}
		if err := s.quizzes.Create(ctx, newQuiz); err != nil {
			return nil, err
		}

		s.recordGeneration(ctx, "created", time.Since(start))
		results = append(results, newQuiz)
	}

	return results, nil
}

// reuseByHash returns a previously generated quiz for a study slot,
// re-homing it under the sub topic when it drifted.
func (s *QuizService) reuseByHash(ctx context.Context, itemHash string, subTopicID int) (*domain.Quiz, error) {
	existing, err := s.quizzes.GetByHash(ctx, itemHash)
	if err != nil || existing == nil {
		return nil, err
	}

	if existing.SubTopicID == nil || *existing.SubTopicID != subTopicID {
		if err := s.quizzes.UpdateSubTopicID(ctx, existing.ID, &subTopicID); err != nil {
			return nil, err
		}
		existing.SubTopicID = &subTopicID
	}

	s.recordGeneration(ctx, "cached", 0)
	return existing, nil
}

func (s *QuizService) generateOne(ctx context.Context, text string, subjectID int, start time.Time) (*ai.GeneratedQuiz, error) {
	subjectName := "ADsP"
	if subject, err := s.categories.GetSubject(ctx, subjectID); err == nil && subject != nil {
		subjectName = subject.Name
	}

	generated, err := s.generator.GenerateQuiz(ctx, text, subjectName)
	if err != nil {
		if errors.Is(err, ai.ErrOverloaded) {
			s.recordGeneration(ctx, "overloaded", time.Since(start))
			return nil, domain.ErrAIOverloaded()
		}
		s.recordGeneration(ctx, "failed", time.Since(start))
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	return generated, nil
}

func (s *QuizService) resolveQuizText(ctx context.Context, input GenerateInput) (string, *string, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", nil, domain.ErrEmptyCoreContent()
	}

	switch input.SourceType {
	case QuizSourceText:
		return content, nil, nil
	case QuizSourceURL:
	default:
		return "", nil, domain.ErrInvalidQuizSourceType()
	}

	videoID, err := youtube.ExtractVideoID(content)
	if err != nil {
		return "", nil, domain.ErrInvalidYoutubeURL(err.Error())
	}

	transcript, err := s.transcripts.Transcript(ctx, videoID)
	if err != nil {
		return "", nil, domain.ErrTranscriptNotFound(err.Error())
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", nil, domain.ErrEmptyClassificationText()
	}

	return transcript, &content, nil
}

// GetQuiz retrieves one quiz by id.
func (s *QuizService) GetQuiz(ctx context.Context, id int) (*domain.Quiz, error) {
	q, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound("퀴즈를 찾을 수 없습니다.")
	}
	return q, nil
}

// ListSubjects returns the subject taxonomy level.
func (s *QuizService) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	return s.categories.ListSubjects(ctx)
}

func (s *QuizService) recordGeneration(ctx context.Context, outcome string, duration time.Duration) {
	if s.telemetry != nil {
		s.telemetry.RecordQuizGeneration(ctx, outcome, duration)
	}
}
