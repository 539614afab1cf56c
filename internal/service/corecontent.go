package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/EHWIYA/adsp-quiz-back/internal/classifier"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
	"github.com/EHWIYA/adsp-quiz-back/internal/youtube"
)

// Confidence below this floor gets a warning log; the run still goes
// through the normal pending/applied decision.
const lowConfidenceFloor = 0.05

const minPreviewLength = 50

// CoreContentService runs the auto-classification workflow: resolve the
// input into text, rank the taxonomy, persist a run snapshot and either
// apply the top pick or queue the run for review.
type CoreContentService struct {
	categories  CategoryStore
	rules       RuleStore
	settings    SettingsStore
	runs        RunStore
	overrides   OverrideStore
	transcripts TranscriptResolver
	engine      *classifier.Engine
	telemetry   *telemetry.Provider
	logger      logger.Logger
}

// NewCoreContentService wires the classification workflow.
func NewCoreContentService(
	categories CategoryStore,
	rules RuleStore,
	settings SettingsStore,
	runs RunStore,
	overrides OverrideStore,
	transcripts TranscriptResolver,
	engine *classifier.Engine,
	tp *telemetry.Provider,
	log logger.Logger,
) *CoreContentService {
	return &CoreContentService{
		categories:  categories,
		rules:       rules,
		settings:    settings,
		runs:        runs,
		overrides:   overrides,
		transcripts: transcripts,
		engine:      engine,
		telemetry:   tp,
		logger:      log,
	}
}

// ClassifyInput is one auto-classification request.
type ClassifyInput struct {
	Content    string
	SourceType string
}

// ClassifyResult carries the persisted run and its stored candidates.
// CategoryPath names the category the content landed on; it stays empty
// while the run waits for review.
type ClassifyResult struct {
	Run          *domain.AutoRun
	Candidates   []*domain.AutoCandidate
	CategoryPath string
}

// ClassifyAndApply resolves the input to classification text, ranks
// every category, persists the run and applies the winner when its
// confidence clears the threshold.
func (s *CoreContentService) ClassifyAndApply(ctx context.Context, input ClassifyInput) (*ClassifyResult, error) {
	start := time.Now()

	if s.telemetry != nil {
		var span trace.Span
		ctx, span = s.telemetry.StartSpan(ctx, "classify_and_apply",
			attribute.String("source_type", input.SourceType))
		defer span.End()
	}

	content := strings.TrimSpace(input.Content)

	text, err := s.resolveText(ctx, input)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	candidates, top, err := s.rank(ctx, text, *settings)
	if err != nil {
		return nil, err
	}

	confidence := classifier.Clamp(top.Score)
	if confidence < lowConfidenceFloor {
		s.logger.Warn("classification confidence very low",
			logger.Float64("confidence", confidence),
			logger.String("category", top.SubTopic.CategoryPath()))
		if s.telemetry != nil {
			s.telemetry.RecordLowConfidence(ctx)
		}
	}

	status := domain.RunStatusApplied
	var finalSubTopicID *int
	if confidence < settings.MinConfidence {
		status = domain.RunStatusPending
	} else {
		id := top.SubTopic.ID
		finalSubTopicID = &id
	}

	stored := storedCandidates(candidates, settings.MaxCandidates)

	// The run keeps the raw request (a URL stays a URL) while preview
	// and hash describe the text that was actually scored.
	autoID := top.SubTopic.ID
	run := &domain.AutoRun{
		RequestContent:   content,
		SourceType:       input.SourceType,
		TextPreview:      preview(text, settings.TextPreviewLength),
		TextHash:         youtube.Hash(text),
		AutoSubTopicID:   &autoID,
		AutoConfidence:   confidence,
		FinalSubTopicID:  finalSubTopicID,
		Status:           status,
		Strategy:         settings.Strategy,
		MinConfidence:    settings.MinConfidence,
		KeywordWeight:    settings.KeywordWeight,
		SimilarityWeight: settings.SimilarityWeight,
		MaxCandidates:    settings.MaxCandidates,
		CandidateCount:   len(candidates),
	}

	if err := s.runs.CreateWithCandidates(ctx, run, stored); err != nil {
		return nil, err
	}

	var categoryPath string
	if status == domain.RunStatusApplied {
		if err := s.applyToCategory(ctx, run, top.SubTopic.ID, content, input.SourceType); err != nil {
			return nil, err
		}
		categoryPath = top.SubTopic.CategoryPath()
	}

	if s.telemetry != nil {
		s.telemetry.RecordRun(ctx, run.Status, time.Since(start))
	}

	s.logger.Info("classification run recorded",
		logger.Int("run_id", run.ID),
		logger.String("status", run.Status),
		logger.Float64("confidence", confidence),
		logger.String("category", top.SubTopic.CategoryPath()))

	return &ClassifyResult{
		Run:          run,
		Candidates:   stored,
		CategoryPath: categoryPath,
	}, nil
}

// resolveText validates the input and turns it into classification text.
// YouTube inputs are resolved via the transcript client.
func (s *CoreContentService) resolveText(ctx context.Context, input ClassifyInput) (string, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return "", domain.ErrEmptyCoreContent()
	}

	switch input.SourceType {
	case domain.SourceTypeText:
		return content, nil
	case domain.SourceTypeYoutube:
	default:
		return "", domain.ErrInvalidSourceType()
	}

	videoID, err := youtube.ExtractVideoID(content)
	if err != nil {
		s.recordTranscriptFetch(ctx, "invalid_url")
		return "", domain.ErrInvalidYoutubeURL(err.Error())
	}

	transcript, err := s.transcripts.Transcript(ctx, videoID)
	if err != nil {
		s.recordTranscriptFetch(ctx, "unavailable")
		return "", domain.ErrTranscriptNotFound(err.Error())
	}
	s.recordTranscriptFetch(ctx, "ok")

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", domain.ErrEmptyClassificationText()
	}

	return transcript, nil
}

func (s *CoreContentService) rank(ctx context.Context, text string, settings domain.AutoSettings) ([]classifier.Candidate, *classifier.Candidate, error) {
	categories, err := s.categories.ListWithRelations(ctx)
	if err != nil {
		return nil, nil, err
	}

	activeRules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	rules := make([]domain.CategoryRule, 0, len(activeRules))
	for _, rule := range activeRules {
		rules = append(rules, *rule)
	}

	candidates, err := s.engine.Rank(ctx, text, categories, rules, settings)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return nil, nil, domain.ErrCategoryDataUnavailable()
	}

	return candidates, &candidates[0], nil
}

// applyToCategory appends the original request content to the winning
// sub topic.
// On failure the run is finalized as failed before the error propagates.
func (s *CoreContentService) applyToCategory(ctx context.Context, run *domain.AutoRun, subTopicID int, text, sourceType string) error {
	subTopic, err := s.categories.AppendContent(ctx, subTopicID, text, sourceType)
	if err == nil && subTopic == nil {
		err = errors.New("winning sub topic disappeared")
	}
	if err != nil {
		s.logger.Error("core content append failed",
			logger.Int("run_id", run.ID),
			logger.Int("sub_topic_id", subTopicID),
			logger.Error(err))
		if failed, finErr := s.runs.Finalize(ctx, run.ID, nil, domain.RunStatusFailed, nil); finErr == nil && failed != nil {
			*run = *failed
		}
		return domain.ErrContentUpdateFailed()
	}
	return nil
}

func (s *CoreContentService) recordTranscriptFetch(ctx context.Context, outcome string) {
	if s.telemetry != nil {
		s.telemetry.RecordTranscriptFetch(ctx, outcome)
	}
}

// storedCandidates clamps scores into [0,1] and cuts the list to the
// configured maximum, never below one.
func storedCandidates(candidates []classifier.Candidate, maxCandidates int) []*domain.AutoCandidate {
	limit := max(1, maxCandidates)
	limit = min(limit, len(candidates))

	stored := make([]*domain.AutoCandidate, 0, limit)
	for i := 0; i < limit; i++ {
		c := candidates[i]
		stored = append(stored, &domain.AutoCandidate{
			SubTopicID:   c.SubTopic.ID,
			Score:        classifier.Clamp(c.Score),
			Rank:         i + 1,
			CategoryPath: c.SubTopic.CategoryPath(),
		})
	}
	return stored
}

// preview cuts the classification text down for list views. The length
// floor keeps previews useful even with a tiny configured length.
func preview(text string, configured int) string {
	length := max(minPreviewLength, configured)
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length])
}
