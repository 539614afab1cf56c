// Package service implements the classification and quiz workflows on
// top of the storage repositories and the ranking engine.
package service

import (
	"context"

	"github.com/EHWIYA/adsp-quiz-back/internal/ai"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
)

// CategoryStore provides taxonomy reads and core-content writes.
type CategoryStore interface {
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	GetSubject(ctx context.Context, id int) (*domain.Subject, error)
	ListWithRelations(ctx context.Context) ([]*domain.SubTopic, error)
	ListByMainTopic(ctx context.Context, mainTopicID int) ([]*domain.SubTopic, error)
	GetSubTopic(ctx context.Context, id int) (*domain.SubTopic, error)
	AppendContent(ctx context.Context, id int, text, sourceType string) (*domain.SubTopic, error)
	SetContent(ctx context.Context, id int, content, sourceType string) (*domain.SubTopic, error)
}

// RuleStore provides category rule reads and writes.
type RuleStore interface {
	ListActive(ctx context.Context) ([]*domain.CategoryRule, error)
	List(ctx context.Context) ([]*domain.CategoryRule, error)
	Upsert(ctx context.Context, rules []*domain.CategoryRule) error
}

// SettingsStore provides the singleton engine settings row.
type SettingsStore interface {
	GetOrCreate(ctx context.Context) (*domain.AutoSettings, error)
	Update(ctx context.Context, update domain.SettingsUpdate) (*domain.AutoSettings, error)
}

// RunStore persists classification runs and their candidates.
type RunStore interface {
	CreateWithCandidates(ctx context.Context, run *domain.AutoRun, candidates []*domain.AutoCandidate) error
	GetByID(ctx context.Context, id int) (*domain.AutoRun, error)
	Finalize(ctx context.Context, id int, finalSubTopicID *int, status string, rejectionReason *string) (*domain.AutoRun, error)
	ListPending(ctx context.Context, page, limit int) ([]*domain.AutoRun, int, error)
	CandidatesByRunIDs(ctx context.Context, runIDs []int) (map[int][]*domain.AutoCandidate, error)
}

// OverrideStore records operator overrides.
type OverrideStore interface {
	Create(ctx context.Context, override *domain.AutoOverride) error
}

// QuizStore persists generated quizzes.
type QuizStore interface {
	Create(ctx context.Context, quiz *domain.Quiz) error
	GetByID(ctx context.Context, id int) (*domain.Quiz, error)
	GetByHash(ctx context.Context, sourceHash string) (*domain.Quiz, error)
	ListBySubTopic(ctx context.Context, subTopicID, limit int) ([]*domain.Quiz, error)
	UpdateSubTopicID(ctx context.Context, quizID int, subTopicID *int) error
}

// ExamStore persists answered questions.
type ExamStore interface {
	CreateRecord(ctx context.Context, record *domain.ExamRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.ExamRecord, error)
}

// WrongAnswerStore persists wrong-answer review notes.
type WrongAnswerStore interface {
	Upsert(ctx context.Context, wa *domain.WrongAnswer) error
	List(ctx context.Context, page, limit int) ([]*domain.WrongAnswer, int, error)
	Delete(ctx context.Context, quizID int) (bool, error)
}

// TranscriptResolver fetches caption text for a YouTube video.
type TranscriptResolver interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// QuizGenerator produces one quiz from source text.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, sourceText, subjectName string) (*ai.GeneratedQuiz, error)
}
