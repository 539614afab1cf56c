package service

import (
	"context"

	"github.com/EHWIYA/adsp-quiz-back/internal/classifier"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// GetSettings returns the engine settings, creating the defaults on
// first read.
func (s *CoreContentService) GetSettings(ctx context.Context) (*domain.AutoSettings, error) {
	return s.settings.GetOrCreate(ctx)
}

// UpdateSettings applies a partial settings change. An unknown strategy
// is rejected up front rather than silently falling back at rank time.
// Category rules carried in the update are validated as a whole, then
// written in one batch.
func (s *CoreContentService) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (*domain.AutoSettings, error) {
	if update.Strategy != nil && !classifier.ValidStrategy(*update.Strategy) {
		return nil, domain.ErrInvalidStrategy()
	}

	updated, err := s.settings.Update(ctx, update)
	if err != nil {
		return nil, err
	}

	if len(update.CategoryRules) > 0 {
		rules := make([]*domain.CategoryRule, 0, len(update.CategoryRules))
		for _, ru := range update.CategoryRules {
			subTopic, err := s.categories.GetSubTopic(ctx, ru.SubTopicID)
			if err != nil {
				return nil, err
			}
			if subTopic == nil {
				return nil, domain.ErrSubTopicNotFound()
			}
			rules = append(rules, ruleFromUpdate(ru))
		}
		if err := s.rules.Upsert(ctx, rules); err != nil {
			return nil, err
		}
		s.logger.Info("category rules updated", logger.Int("count", len(rules)))
	}

	s.logger.Info("classification settings updated",
		logger.Float64("min_confidence", updated.MinConfidence),
		logger.String("strategy", updated.Strategy))

	return updated, nil
}

// ruleFromUpdate fills in the rule defaults: weight 1.0, active.
func ruleFromUpdate(ru domain.RuleUpdate) *domain.CategoryRule {
	rule := &domain.CategoryRule{
		SubTopicID: ru.SubTopicID,
		Weight:     1.0,
		Priority:   ru.Priority,
		IsActive:   true,
	}
	if ru.Weight != nil {
		rule.Weight = *ru.Weight
	}
	if ru.IsActive != nil {
		rule.IsActive = *ru.IsActive
	}
	return rule
}

// ListRules returns every category rule.
func (s *CoreContentService) ListRules(ctx context.Context) ([]*domain.CategoryRule, error) {
	return s.rules.List(ctx)
}

// UpsertRule creates or replaces the rule for one sub topic.
func (s *CoreContentService) UpsertRule(ctx context.Context, rule *domain.CategoryRule) (*domain.CategoryRule, error) {
	subTopic, err := s.categories.GetSubTopic(ctx, rule.SubTopicID)
	if err != nil {
		return nil, err
	}
	if subTopic == nil {
		return nil, domain.ErrSubTopicNotFound()
	}

	if err := s.rules.Upsert(ctx, []*domain.CategoryRule{rule}); err != nil {
		return nil, err
	}

	s.logger.Info("category rule upserted",
		logger.Int("sub_topic_id", rule.SubTopicID),
		logger.Float64("weight", rule.Weight),
		logger.Bool("is_active", rule.IsActive))

	return rule, nil
}
