package classifier

import (
	"context"
	"sort"
	"time"

	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
)

// Candidate is one scored category before persistence. Score is the raw
// base*weight product; clamping happens when candidates are stored.
type Candidate struct {
	SubTopic *domain.SubTopic
	Score    float64
	Priority int
}

// Engine ranks the taxonomy against a classification text.
type Engine struct {
	logger    logger.Logger
	telemetry *telemetry.Provider
}

// NewEngine creates a ranking engine.
func NewEngine(log logger.Logger, tp *telemetry.Provider) *Engine {
	return &Engine{logger: log, telemetry: tp}
}

// Rank scores every category and returns all candidates sorted
// descending by (score, priority). The full taxonomy is re-read per
// call, so rule and settings changes apply immediately.
func (e *Engine) Rank(
	ctx context.Context,
	text string,
	categories []*domain.SubTopic,
	rules []domain.CategoryRule,
	settings domain.AutoSettings,
) ([]Candidate, error) {
	start := time.Now()

	if len(categories) == 0 {
		return nil, domain.ErrCategoryDataUnavailable()
	}

	strategy, ok := ParseStrategy(settings.Strategy)
	if !ok {
		e.logger.Warn("unknown classification strategy, falling back to hybrid",
			logger.String("strategy", settings.Strategy))
	}

	ruleMap := make(map[int]domain.CategoryRule, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			ruleMap[rule.SubTopicID] = rule
		}
	}

	candidates := make([]Candidate, 0, len(categories))
	for _, category := range categories {
		base := BaseScore(text, category.CategoryText(), strategy, settings.KeywordWeight, settings.SimilarityWeight)

		weight := 1.0
		priority := 0
		if rule, found := ruleMap[category.ID]; found {
			weight = rule.Weight
			priority = rule.Priority
		}

		candidates = append(candidates, Candidate{
			SubTopic: category,
			Score:    base * weight,
			Priority: priority,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Priority > candidates[j].Priority
	})

	if e.telemetry != nil {
		e.telemetry.RecordRanking(ctx, time.Since(start), len(categories), len(candidates))
	}

	return candidates, nil
}
