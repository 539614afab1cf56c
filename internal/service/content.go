package service

import (
	"context"
	"strings"

	"github.com/EHWIYA/adsp-quiz-back/internal/corecontent"
	"github.com/EHWIYA/adsp-quiz-back/internal/domain"
	"github.com/EHWIYA/adsp-quiz-back/internal/logger"
)

// GetCoreContent returns a sub topic with its accumulated study
// material decoded into entries.
func (s *CoreContentService) GetCoreContent(ctx context.Context, subTopicID int) (*domain.SubTopic, []corecontent.Entry, error) {
	subTopic, err := s.categories.GetSubTopic(ctx, subTopicID)
	if err != nil {
		return nil, nil, err
	}
	if subTopic == nil {
		return nil, nil, domain.ErrNotFound("세부항목을 찾을 수 없습니다.")
	}

	var entries []corecontent.Entry
	if subTopic.CoreContent != nil {
		defaultSource := ""
		if subTopic.SourceType != nil {
			defaultSource = *subTopic.SourceType
		}
		entries = corecontent.Decode(*subTopic.CoreContent, defaultSource)
	}

	return subTopic, entries, nil
}

// RegisterInput is a direct core-content registration, bypassing
// classification. MainTopicID guards against registering under the
// wrong branch of the taxonomy.
type RegisterInput struct {
	SubTopicID  int
	MainTopicID int
	Content     string
	SourceType  string
}

// RegisterCoreContent stores the first study material on a sub topic.
// Re-registration over existing content is rejected; appends go through
// classification or review approval instead.
func (s *CoreContentService) RegisterCoreContent(ctx context.Context, input RegisterInput) (*domain.SubTopic, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrEmptyCoreContent()
	}
	if input.SourceType != domain.SourceTypeText && input.SourceType != domain.SourceTypeYoutube {
		return nil, domain.ErrInvalidSourceType()
	}

	subTopic, err := s.categories.GetSubTopic(ctx, input.SubTopicID)
	if err != nil {
		return nil, err
	}
	if subTopic == nil {
		return nil, domain.ErrSubTopicNotFound()
	}

	if input.MainTopicID > 0 && subTopic.MainTopicID != input.MainTopicID {
		return nil, domain.ErrInvalidCategory()
	}

	if subTopic.CoreContent != nil && strings.TrimSpace(*subTopic.CoreContent) != "" {
		return nil, domain.ErrAlreadyExists()
	}

	encoded := corecontent.Prepend("", content, input.SourceType)
	updated, err := s.categories.SetContent(ctx, input.SubTopicID, encoded, input.SourceType)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrSubTopicNotFound()
	}

	s.logger.Info("core content registered",
		logger.Int("sub_topic_id", input.SubTopicID),
		logger.String("source_type", input.SourceType))

	return updated, nil
}

// ListSubTopics returns the sub topics of one main topic.
func (s *CoreContentService) ListSubTopics(ctx context.Context, mainTopicID int) ([]*domain.SubTopic, error) {
	return s.categories.ListByMainTopic(ctx, mainTopicID)
}
